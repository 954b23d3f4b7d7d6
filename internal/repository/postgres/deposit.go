package postgres

import (
	"context"
	"database/sql"
	"errors"

	"toolrent-core/internal/domain"
)

type depositRepository struct {
	q DBTX
}

func (r *depositRepository) CreatePayment(ctx context.Context, dp *domain.DepositPayment) error {
	query := `INSERT INTO deposit_payments (contract_id, amount_cents, payment_date, method, reference, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, dp.ContractID, dp.AmountCents, dp.PaymentDate, dp.Method, dp.Reference).
		Scan(&dp.ID, &dp.CreatedOn)
	return wrapDBError(err, "create deposit payment")
}

func (r *depositRepository) GetPayment(ctx context.Context, contractID int64) (*domain.DepositPayment, error) {
	dp := &domain.DepositPayment{}
	query := `SELECT id, contract_id, amount_cents, payment_date, method, COALESCE(reference, ''), created_on
	          FROM deposit_payments WHERE contract_id = $1`
	err := r.q.QueryRowContext(ctx, query, contractID).Scan(&dp.ID, &dp.ContractID, &dp.AmountCents, &dp.PaymentDate, &dp.Method, &dp.Reference, &dp.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDBError(err, "get deposit payment")
	}
	return dp, nil
}

func (r *depositRepository) CreateRefund(ctx context.Context, dr *domain.DepositRefund) error {
	query := `INSERT INTO deposit_refunds (contract_id, amount_cents, refund_date, method, reference, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err := r.q.QueryRowContext(ctx, query, dr.ContractID, dr.AmountCents, dr.RefundDate, dr.Method, dr.Reference).
		Scan(&dr.ID, &dr.CreatedOn)
	return wrapDBError(err, "create deposit refund")
}

func (r *depositRepository) GetRefund(ctx context.Context, contractID int64) (*domain.DepositRefund, error) {
	dr := &domain.DepositRefund{}
	query := `SELECT id, contract_id, amount_cents, refund_date, method, COALESCE(reference, ''), created_on
	          FROM deposit_refunds WHERE contract_id = $1`
	err := r.q.QueryRowContext(ctx, query, contractID).Scan(&dr.ID, &dr.ContractID, &dr.AmountCents, &dr.RefundDate, &dr.Method, &dr.Reference, &dr.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapDBError(err, "get deposit refund")
	}
	return dr, nil
}
