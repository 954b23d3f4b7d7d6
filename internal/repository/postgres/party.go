package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-core/internal/domain"
)

type partyRepository struct {
	q DBTX
}

func (r *partyRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, active FROM customers WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("customer %d not found", id)
	}
	if err != nil {
		return nil, wrapDBError(err, "get customer")
	}
	return c, nil
}

func (r *partyRepository) GetOperator(ctx context.Context, id int64) (*domain.Operator, error) {
	o := &domain.Operator{}
	query := `SELECT id, name, active FROM operators WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("operator %d not found", id)
	}
	if err != nil {
		return nil, wrapDBError(err, "get operator")
	}
	return o, nil
}
