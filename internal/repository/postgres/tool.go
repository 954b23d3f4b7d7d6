package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-core/internal/domain"
)

type toolRepository struct {
	q DBTX
}

func (r *toolRepository) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	t := &domain.Tool{}
	query := `SELECT id, name, sku, daily_rate_cents, deposit_per_unit_cents, minimum_days, on_hand, active, created_on, updated_on FROM tools WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.SKU, &t.DailyRateCents, &t.DepositPerUnitCents, &t.MinimumDays, &t.OnHand, &t.Active, &t.CreatedOn, &t.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("tool %d not found", id)
	}
	if err != nil {
		return nil, wrapDBError(err, "get tool")
	}
	return t, nil
}

// Reserve decrements on-hand stock as a single conditional update so two
// concurrent reservations can never both pass an availability check that only
// one of them satisfies.
func (r *toolRepository) Reserve(ctx context.Context, toolID int64, qty int32) error {
	query := `UPDATE tools SET on_hand = on_hand - $2, updated_on = NOW() WHERE id = $1 AND active AND on_hand >= $2`
	res, err := r.q.ExecContext(ctx, query, toolID, qty)
	if err != nil {
		return wrapDBError(err, "reserve tool")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err, "reserve tool")
	}
	if n == 1 {
		return nil
	}

	// Zero rows: re-read to report which precondition failed.
	t, err := r.GetByID(ctx, toolID)
	if err != nil {
		return err
	}
	if !t.Active {
		return domain.NewConflictError(domain.CodeToolInactive, "tool %d (%s) is not active", t.ID, t.Name)
	}
	return domain.NewConflictError(domain.CodeInsufficientStock, "tool %d (%s): requested %d, on hand %d", t.ID, t.Name, qty, t.OnHand)
}

func (r *toolRepository) Release(ctx context.Context, toolID int64, qty int32) error {
	query := `UPDATE tools SET on_hand = on_hand + $2, updated_on = NOW() WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, toolID, qty)
	if err != nil {
		return wrapDBError(err, "release tool")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err, "release tool")
	}
	if n == 0 {
		return domain.NewNotFoundError("tool %d not found", toolID)
	}
	return nil
}
