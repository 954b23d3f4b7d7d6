package service

import (
	"context"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/repository"
	"toolrent-core/internal/utils"
)

type depositService struct {
	store repository.Store
}

func NewDepositService(store repository.Store) DepositService {
	return &depositService{store: store}
}

func (s *depositService) PayDeposit(ctx context.Context, req DepositPaymentRequest) (*domain.DepositPayment, error) {
	logger.EnterMethod("depositService.PayDeposit", "contract_id", req.ContractID, "amount_cents", req.AmountCents)

	if !req.Method.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidPaymentMethod,
			"unknown payment method %q", string(req.Method))
	}

	payment := &domain.DepositPayment{
		ContractID:  req.ContractID,
		AmountCents: req.AmountCents,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		contract, err := tx.Contracts().GetByIDForUpdate(ctx, req.ContractID)
		if err != nil {
			return err
		}
		existing, err := tx.Deposits().GetPayment(ctx, contract.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewConflictError(domain.CodeAlreadyPaid,
				"deposit for contract %d already paid on %s", contract.ID, existing.PaymentDate.Format("2006-01-02"))
		}
		if contract.Status != domain.ContractStatusActive {
			return domain.NewStateError(domain.CodeInvalidState,
				"contract %d is %s; deposits are collected on ACTIVE contracts", contract.ID, contract.Status)
		}
		if contract.DepositAmountCents == 0 {
			return domain.NewConflictError(domain.CodeNoDepositRequired,
				"contract %d requires no deposit", contract.ID)
		}
		if req.AmountCents != contract.DepositAmountCents {
			return domain.NewValidationError(domain.CodeAmountMismatch,
				"deposit amount %d does not match contract deposit %d", req.AmountCents, contract.DepositAmountCents)
		}
		return tx.Deposits().CreatePayment(ctx, payment)
	})
	if err != nil {
		logger.ExitMethodWithError("depositService.PayDeposit", err, "contract_id", req.ContractID)
		return nil, err
	}

	logger.ExitMethod("depositService.PayDeposit", "deposit_id", payment.ID)
	return payment, nil
}

func (s *depositService) SuggestRefund(ctx context.Context, contractID int64) (*domain.RefundSuggestion, error) {
	if _, err := s.store.Contracts().GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.suggest(ctx, s.store, contractID)
}

// suggest computes the condition-based refund suggestion. It runs against
// whichever store the caller holds so RefundDeposit can reuse it inside its
// transaction.
func (s *depositService) suggest(ctx context.Context, tx repository.Store, contractID int64) (*domain.RefundSuggestion, error) {
	payment, err := tx.Deposits().GetPayment(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.NewConflictError(domain.CodeNoDepositPaid, "no deposit paid for contract %d", contractID)
	}

	reserved, err := tx.Contracts().SumReservedQuantity(ctx, contractID)
	if err != nil {
		return nil, err
	}
	returned, err := tx.Returns().SumReturnedByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if returned < reserved {
		return &domain.RefundSuggestion{
			ContractID:   contractID,
			DepositCents: payment.AmountCents,
			Reason:       "not fully returned",
		}, nil
	}

	records, err := tx.Returns().ListByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	conditions := make([]domain.ReturnCondition, len(records))
	for i, rr := range records {
		conditions[i] = rr.Condition
	}
	pct := utils.RefundPercentage(conditions)

	return &domain.RefundSuggestion{
		ContractID:     contractID,
		DepositCents:   payment.AmountCents,
		Percentage:     pct,
		SuggestedCents: utils.RefundAmount(payment.AmountCents, pct),
	}, nil
}

func (s *depositService) RefundDeposit(ctx context.Context, req DepositRefundRequest) (*domain.DepositRefund, error) {
	logger.EnterMethod("depositService.RefundDeposit", "contract_id", req.ContractID)

	if !req.Method.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidPaymentMethod,
			"unknown payment method %q", string(req.Method))
	}

	refund := &domain.DepositRefund{
		ContractID: req.ContractID,
		RefundDate: req.RefundDate,
		Method:     req.Method,
		Reference:  req.Reference,
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		contract, err := tx.Contracts().GetByIDForUpdate(ctx, req.ContractID)
		if err != nil {
			return err
		}
		if contract.Status != domain.ContractStatusFinalized {
			return domain.NewStateError(domain.CodeNotFinalized,
				"contract %d is %s; deposit refunds require a FINALIZED contract", contract.ID, contract.Status)
		}
		payment, err := tx.Deposits().GetPayment(ctx, contract.ID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.NewConflictError(domain.CodeNoDepositPaid, "no deposit paid for contract %d", contract.ID)
		}
		existing, err := tx.Deposits().GetRefund(ctx, contract.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewConflictError(domain.CodeAlreadyRefunded,
				"deposit for contract %d already refunded on %s", contract.ID, existing.RefundDate.Format("2006-01-02"))
		}

		amount := int64(0)
		if req.AmountCents != nil {
			amount = *req.AmountCents
		} else {
			suggestion, err := s.suggest(ctx, tx, contract.ID)
			if err != nil {
				return err
			}
			amount = suggestion.SuggestedCents
		}
		if amount < 0 {
			return domain.NewValidationError(domain.CodeNegativeAmount, "refund amount must not be negative, got %d", amount)
		}
		if amount > payment.AmountCents {
			return domain.NewConflictError(domain.CodeExceedsDeposit,
				"refund %d exceeds deposit paid %d", amount, payment.AmountCents)
		}

		refund.AmountCents = amount
		return tx.Deposits().CreateRefund(ctx, refund)
	})
	if err != nil {
		logger.ExitMethodWithError("depositService.RefundDeposit", err, "contract_id", req.ContractID)
		return nil, err
	}

	logger.ExitMethod("depositService.RefundDeposit", "refund_id", refund.ID, "amount_cents", refund.AmountCents)
	return refund, nil
}
