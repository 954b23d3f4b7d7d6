package service

import (
	"context"

	"github.com/google/uuid"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/repository"
)

type paymentService struct {
	store repository.Store
}

func NewPaymentService(store repository.Store) PaymentService {
	return &paymentService{store: store}
}

// RecordPayment accepts a payment only up to the balance already earned
// through verified returns. Customers pay for verified usage, not estimates.
func (s *paymentService) RecordPayment(ctx context.Context, req PaymentRequest) (*domain.PaymentRecord, error) {
	logger.EnterMethod("paymentService.RecordPayment", "contract_id", req.ContractID, "amount_cents", req.AmountCents)

	if req.AmountCents <= 0 {
		return nil, domain.NewValidationError(domain.CodeInvalidAmount,
			"payment amount must be positive, got %d", req.AmountCents)
	}
	if !req.Method.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidPaymentMethod,
			"unknown payment method %q", string(req.Method))
	}

	record := &domain.PaymentRecord{
		ContractID:   req.ContractID,
		AmountCents:  req.AmountCents,
		PaymentDate:  req.PaymentDate,
		Method:       req.Method,
		Reference:    req.Reference,
		DocumentLink: req.DocumentLink,
	}
	if record.Reference == "" {
		record.Reference = uuid.NewString()
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		contract, err := tx.Contracts().GetByIDForUpdate(ctx, req.ContractID)
		if err != nil {
			return err
		}
		if req.PaymentDate.Before(contract.StartDate) {
			return domain.NewValidationError(domain.CodeInvalidPaymentDate,
				"payment date %s precedes contract start %s",
				req.PaymentDate.Format("2006-01-02"), contract.StartDate.Format("2006-01-02"))
		}

		earned, err := tx.Returns().SumChargedByContract(ctx, contract.ID)
		if err != nil {
			return err
		}
		if earned == 0 {
			return domain.NewConflictError(domain.CodeNothingEarnedYet,
				"contract %d has no verified returns yet; payments require earned charges", contract.ID)
		}

		paid, err := tx.Payments().SumByContract(ctx, contract.ID)
		if err != nil {
			return err
		}
		available := earned - paid
		if req.AmountCents > available {
			return domain.NewConflictError(domain.CodeExceedsAvailableBalance,
				"requested %d, earned to date %d, already paid %d (available %d)",
				req.AmountCents, earned, paid, available)
		}

		return tx.Payments().Create(ctx, record)
	})
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "contract_id", req.ContractID)
		return nil, err
	}

	logger.ExitMethod("paymentService.RecordPayment", "payment_id", record.ID, "reference", record.Reference)
	return record, nil
}

func (s *paymentService) GetSettlementSummary(ctx context.Context, contractID int64) (*domain.SettlementSummary, error) {
	contract, err := s.store.Contracts().GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	paid, err := s.store.Payments().SumByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	due := contract.EstimatedAmountCents
	if contract.FinalAmountCents != nil {
		due = *contract.FinalAmountCents
	}

	status := domain.PaymentStatusPartiallyPaid
	switch {
	case paid == 0:
		status = domain.PaymentStatusNoPayments
	case paid >= due:
		status = domain.PaymentStatusFullyPaid
	}

	return &domain.SettlementSummary{
		ContractID:      contractID,
		AmountDueCents:  due,
		AmountPaidCents: paid,
		BalanceCents:    due - paid,
		Status:          status,
	}, nil
}
