package postgres

import (
	"context"

	"toolrent-core/internal/domain"
)

type paymentRepository struct {
	q DBTX
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.PaymentRecord) error {
	query := `INSERT INTO payment_records (contract_id, amount_cents, payment_date, method, reference, document_link, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, p.ContractID, p.AmountCents, p.PaymentDate, p.Method, p.Reference, p.DocumentLink).
		Scan(&p.ID, &p.CreatedOn)
	return wrapDBError(err, "create payment record")
}

func (r *paymentRepository) SumByContract(ctx context.Context, contractID int64) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM payment_records WHERE contract_id = $1`
	if err := r.q.QueryRowContext(ctx, query, contractID).Scan(&total); err != nil {
		return 0, wrapDBError(err, "sum payments")
	}
	return total, nil
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID int64) ([]domain.PaymentRecord, error) {
	query := `SELECT id, contract_id, amount_cents, payment_date, method, COALESCE(reference, ''), COALESCE(document_link, ''), created_on
	          FROM payment_records WHERE contract_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, wrapDBError(err, "list payments")
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.ContractID, &p.AmountCents, &p.PaymentDate, &p.Method, &p.Reference, &p.DocumentLink, &p.CreatedOn); err != nil {
			return nil, wrapDBError(err, "list payments")
		}
		payments = append(payments, p)
	}
	return payments, wrapDBError(rows.Err(), "list payments")
}
