package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"toolrent-core/internal/domain"
)

type contractRepository struct {
	q DBTX
}

const contractColumns = `id, customer_id, operator_id, start_date, estimated_end_date, actual_end_date, delivery_mode, status, estimated_amount_cents, final_amount_cents, deposit_amount_cents, COALESCE(notes, ''), created_on, updated_on`

func scanContract(row interface{ Scan(...any) error }) (*domain.Contract, error) {
	c := &domain.Contract{}
	err := row.Scan(&c.ID, &c.CustomerID, &c.OperatorID, &c.StartDate, &c.EstimatedEndDate, &c.ActualEndDate, &c.DeliveryMode, &c.Status, &c.EstimatedAmountCents, &c.FinalAmountCents, &c.DepositAmountCents, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (customer_id, operator_id, start_date, estimated_end_date, delivery_mode, status, estimated_amount_cents, deposit_amount_cents, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()) RETURNING id, created_on, updated_on`
	err := r.q.QueryRowContext(ctx, query, c.CustomerID, c.OperatorID, c.StartDate, c.EstimatedEndDate, c.DeliveryMode, c.Status, c.EstimatedAmountCents, c.DepositAmountCents, c.Notes).
		Scan(&c.ID, &c.CreatedOn, &c.UpdatedOn)
	return wrapDBError(err, "create contract")
}

func (r *contractRepository) CreateLineItem(ctx context.Context, li *domain.LineItem) error {
	query := `INSERT INTO line_items (contract_id, tool_id, tool_name, tool_sku, quantity, unit_rate_cents, rental_days, subtotal_cents, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW()) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, li.ContractID, li.ToolID, li.ToolName, li.ToolSKU, li.Quantity, li.UnitRateCents, li.RentalDays, li.SubtotalCents).
		Scan(&li.ID, &li.CreatedOn)
	return wrapDBError(err, "create line item")
}

func (r *contractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("contract %d not found", id)
	}
	if err != nil {
		return nil, wrapDBError(err, "get contract")
	}
	return c, nil
}

func (r *contractRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 FOR UPDATE`
	c, err := scanContract(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("contract %d not found", id)
	}
	if err != nil {
		return nil, wrapDBError(err, "lock contract")
	}
	return c, nil
}

func (r *contractRepository) GetLineItem(ctx context.Context, id int64) (*domain.LineItem, error) {
	li := &domain.LineItem{}
	query := `SELECT id, contract_id, tool_id, tool_name, tool_sku, quantity, unit_rate_cents, rental_days, subtotal_cents, created_on FROM line_items WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&li.ID, &li.ContractID, &li.ToolID, &li.ToolName, &li.ToolSKU, &li.Quantity, &li.UnitRateCents, &li.RentalDays, &li.SubtotalCents, &li.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("line item %d not found", id)
	}
	if err != nil {
		return nil, wrapDBError(err, "get line item")
	}
	return li, nil
}

func (r *contractRepository) ListLineItems(ctx context.Context, contractID int64) ([]domain.LineItem, error) {
	query := `SELECT id, contract_id, tool_id, tool_name, tool_sku, quantity, unit_rate_cents, rental_days, subtotal_cents, created_on FROM line_items WHERE contract_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, wrapDBError(err, "list line items")
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var li domain.LineItem
		if err := rows.Scan(&li.ID, &li.ContractID, &li.ToolID, &li.ToolName, &li.ToolSKU, &li.Quantity, &li.UnitRateCents, &li.RentalDays, &li.SubtotalCents, &li.CreatedOn); err != nil {
			return nil, wrapDBError(err, "list line items")
		}
		items = append(items, li)
	}
	return items, wrapDBError(rows.Err(), "list line items")
}

func (r *contractRepository) SumReservedQuantity(ctx context.Context, contractID int64) (int32, error) {
	var total int32
	query := `SELECT COALESCE(SUM(quantity), 0) FROM line_items WHERE contract_id = $1`
	if err := r.q.QueryRowContext(ctx, query, contractID).Scan(&total); err != nil {
		return 0, wrapDBError(err, "sum reserved quantity")
	}
	return total, nil
}

func (r *contractRepository) UpdateMutable(ctx context.Context, id int64, deliveryMode *domain.DeliveryMode, notes *string, depositCents *int64) error {
	query := `UPDATE contracts SET
	            delivery_mode = COALESCE($2, delivery_mode),
	            notes = COALESCE($3, notes),
	            deposit_amount_cents = COALESCE($4, deposit_amount_cents),
	            updated_on = NOW()
	          WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, id, deliveryMode, notes, depositCents)
	if err != nil {
		return wrapDBError(err, "update contract")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err, "update contract")
	}
	if n == 0 {
		return domain.NewNotFoundError("contract %d not found", id)
	}
	return nil
}

func (r *contractRepository) SetStatus(ctx context.Context, id int64, status domain.ContractStatus) error {
	query := `UPDATE contracts SET status = $2, updated_on = NOW() WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return wrapDBError(err, "set contract status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err, "set contract status")
	}
	if n == 0 {
		return domain.NewNotFoundError("contract %d not found", id)
	}
	return nil
}

// Finalize is the only write path for final_amount_cents and actual_end_date.
func (r *contractRepository) Finalize(ctx context.Context, id int64, finalAmountCents int64, actualEnd time.Time) error {
	query := `UPDATE contracts SET status = $2, final_amount_cents = $3, actual_end_date = $4, updated_on = NOW()
	          WHERE id = $1 AND final_amount_cents IS NULL`
	res, err := r.q.ExecContext(ctx, query, id, domain.ContractStatusFinalized, finalAmountCents, actualEnd)
	if err != nil {
		return wrapDBError(err, "finalize contract")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err, "finalize contract")
	}
	if n == 0 {
		return domain.NewStateError(domain.CodeInvalidState, "contract %d is already finalized", id)
	}
	return nil
}

func (r *contractRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE contracts SET status = $1, updated_on = NOW() WHERE status = $2 AND estimated_end_date < $3`
	res, err := r.q.ExecContext(ctx, query, domain.ContractStatusOverdue, domain.ContractStatusActive, now)
	if err != nil {
		return 0, wrapDBError(err, "mark overdue contracts")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapDBError(err, "mark overdue contracts")
	}
	return n, nil
}

func (r *contractRepository) List(ctx context.Context, status domain.ContractStatus, page, pageSize int32) ([]domain.Contract, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + contractColumns + ` FROM contracts`
	countQuery := `SELECT count(*) FROM contracts`

	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		countQuery += " WHERE status = $1"
		args = append(args, status)
	}

	var count int32
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, wrapDBError(err, "count contracts")
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "list contracts")
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, wrapDBError(err, "list contracts")
		}
		contracts = append(contracts, *c)
	}
	return contracts, count, wrapDBError(rows.Err(), "list contracts")
}
