package postgres

import (
	"context"

	"toolrent-core/internal/domain"
)

type returnRepository struct {
	q DBTX
}

func (r *returnRepository) Create(ctx context.Context, rr *domain.ReturnRecord) error {
	query := `INSERT INTO return_records (line_item_id, quantity, return_date, elapsed_days, charged_cents, condition, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, rr.LineItemID, rr.Quantity, rr.ReturnDate, rr.ElapsedDays, rr.ChargedCents, rr.Condition, rr.Notes).
		Scan(&rr.ID, &rr.CreatedOn)
	return wrapDBError(err, "create return record")
}

func (r *returnRepository) SumReturnedByLine(ctx context.Context, lineItemID int64) (int32, error) {
	var total int32
	query := `SELECT COALESCE(SUM(quantity), 0) FROM return_records WHERE line_item_id = $1`
	if err := r.q.QueryRowContext(ctx, query, lineItemID).Scan(&total); err != nil {
		return 0, wrapDBError(err, "sum returned by line")
	}
	return total, nil
}

func (r *returnRepository) SumReturnedByContract(ctx context.Context, contractID int64) (int32, error) {
	var total int32
	query := `SELECT COALESCE(SUM(rr.quantity), 0)
	          FROM return_records rr
	          JOIN line_items li ON li.id = rr.line_item_id
	          WHERE li.contract_id = $1`
	if err := r.q.QueryRowContext(ctx, query, contractID).Scan(&total); err != nil {
		return 0, wrapDBError(err, "sum returned by contract")
	}
	return total, nil
}

func (r *returnRepository) SumChargedByContract(ctx context.Context, contractID int64) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(rr.charged_cents), 0)
	          FROM return_records rr
	          JOIN line_items li ON li.id = rr.line_item_id
	          WHERE li.contract_id = $1`
	if err := r.q.QueryRowContext(ctx, query, contractID).Scan(&total); err != nil {
		return 0, wrapDBError(err, "sum charged by contract")
	}
	return total, nil
}

func (r *returnRepository) ListByContract(ctx context.Context, contractID int64) ([]domain.ReturnRecord, error) {
	query := `SELECT rr.id, rr.line_item_id, rr.quantity, rr.return_date, rr.elapsed_days, rr.charged_cents, rr.condition, COALESCE(rr.notes, ''), rr.created_on
	          FROM return_records rr
	          JOIN line_items li ON li.id = rr.line_item_id
	          WHERE li.contract_id = $1
	          ORDER BY rr.id`
	rows, err := r.q.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, wrapDBError(err, "list returns by contract")
	}
	defer rows.Close()

	var records []domain.ReturnRecord
	for rows.Next() {
		var rr domain.ReturnRecord
		if err := rows.Scan(&rr.ID, &rr.LineItemID, &rr.Quantity, &rr.ReturnDate, &rr.ElapsedDays, &rr.ChargedCents, &rr.Condition, &rr.Notes, &rr.CreatedOn); err != nil {
			return nil, wrapDBError(err, "list returns by contract")
		}
		records = append(records, rr)
	}
	return records, wrapDBError(rows.Err(), "list returns by contract")
}
