package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/repository"
	"toolrent-core/internal/utils"
)

type returnService struct {
	store repository.Store
}

func NewReturnService(store repository.Store) ReturnService {
	return &returnService{store: store}
}

func (s *returnService) RecordReturn(ctx context.Context, req ReturnRequest) (*domain.ReturnRecord, error) {
	logger.EnterMethod("returnService.RecordReturn", "line_item_id", req.LineItemID, "quantity", req.Quantity)

	var record *domain.ReturnRecord
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		li, err := tx.Contracts().GetLineItem(ctx, req.LineItemID)
		if err != nil {
			return err
		}
		record, err = s.recordOne(ctx, tx, li, req)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("returnService.RecordReturn", err, "line_item_id", req.LineItemID)
		return nil, err
	}

	logger.ExitMethod("returnService.RecordReturn", "return_id", record.ID, "charged_cents", record.ChargedCents)
	return record, nil
}

func (s *returnService) RecordReturnBatch(ctx context.Context, reqs []ReturnRequest) ([]domain.ReturnRecord, error) {
	if len(reqs) == 0 {
		return nil, domain.NewValidationError(domain.CodeInvalidQuantity, "batch contains no return requests")
	}

	batchID := uuid.NewString()
	logger.EnterMethod("returnService.RecordReturnBatch", "batch_id", batchID, "count", len(reqs))

	var records []domain.ReturnRecord
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		// Resolve every line item first, then process in ascending contract id
		// order: two overlapping batches always take their contract row locks
		// in the same order, mirroring the tool ordering in contract creation.
		type entry struct {
			pos int
			li  *domain.LineItem
			req ReturnRequest
		}
		entries := make([]entry, 0, len(reqs))
		for i, req := range reqs {
			li, err := tx.Contracts().GetLineItem(ctx, req.LineItemID)
			if err != nil {
				return err
			}
			entries = append(entries, entry{pos: i, li: li, req: req})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].li.ContractID < entries[j].li.ContractID
		})

		records = make([]domain.ReturnRecord, len(entries))
		for _, e := range entries {
			record, err := s.recordOne(ctx, tx, e.li, e.req)
			if err != nil {
				return err
			}
			records[e.pos] = *record
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("returnService.RecordReturnBatch", err, "batch_id", batchID)
		return nil, err
	}

	logger.ExitMethod("returnService.RecordReturnBatch", "batch_id", batchID, "recorded", len(records))
	return records, nil
}

// recordOne runs the full return flow for an already-resolved line item
// against a transaction-scoped store: it holds the contract row lock, appends
// to the return ledger, restores stock, and finalizes the contract when the
// last pending unit comes back.
func (s *returnService) recordOne(ctx context.Context, tx repository.Store, li *domain.LineItem, req ReturnRequest) (*domain.ReturnRecord, error) {
	contract, err := tx.Contracts().GetByIDForUpdate(ctx, li.ContractID)
	if err != nil {
		return nil, err
	}

	if contract.Status != domain.ContractStatusActive && contract.Status != domain.ContractStatusOverdue {
		return nil, domain.NewStateError(domain.CodeInvalidContractState,
			"contract %d is %s; returns require an ACTIVE or OVERDUE contract", contract.ID, contract.Status)
	}
	if req.Quantity <= 0 {
		return nil, domain.NewValidationError(domain.CodeInvalidQuantity,
			"return quantity must be positive, got %d", req.Quantity)
	}
	if !req.Condition.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidCondition,
			"unknown return condition %q", string(req.Condition))
	}
	if req.ReturnDate.Before(contract.StartDate) {
		return nil, domain.NewValidationError(domain.CodeInvalidReturnDate,
			"return date %s precedes contract start %s",
			req.ReturnDate.Format("2006-01-02"), contract.StartDate.Format("2006-01-02"))
	}

	returned, err := tx.Returns().SumReturnedByLine(ctx, li.ID)
	if err != nil {
		return nil, err
	}
	pending := li.Quantity - returned
	if req.Quantity > pending {
		return nil, domain.NewConflictError(domain.CodeExceedsPending,
			"line item %d: requested %d, pending %d", li.ID, req.Quantity, pending)
	}

	elapsed := utils.ElapsedDays(contract.StartDate, req.ReturnDate)
	record := &domain.ReturnRecord{
		LineItemID:   li.ID,
		Quantity:     req.Quantity,
		ReturnDate:   req.ReturnDate,
		ElapsedDays:  elapsed,
		ChargedCents: utils.ReturnCharge(req.Quantity, li.UnitRateCents, elapsed),
		Condition:    req.Condition,
		Notes:        req.Notes,
	}
	if err := tx.Returns().Create(ctx, record); err != nil {
		return nil, err
	}
	if err := tx.Tools().Release(ctx, li.ToolID, req.Quantity); err != nil {
		return nil, err
	}

	// Re-aggregate across every line of the contract; the last pending unit
	// coming back finalizes it.
	reserved, err := tx.Contracts().SumReservedQuantity(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	returnedTotal, err := tx.Returns().SumReturnedByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	if returnedTotal == reserved {
		if err := s.finalize(ctx, tx, contract.ID); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (s *returnService) finalize(ctx context.Context, tx repository.Store, contractID int64) error {
	finalCents, err := tx.Returns().SumChargedByContract(ctx, contractID)
	if err != nil {
		return err
	}
	records, err := tx.Returns().ListByContract(ctx, contractID)
	if err != nil {
		return err
	}
	actualEnd := records[0].ReturnDate
	for _, rr := range records[1:] {
		if rr.ReturnDate.After(actualEnd) {
			actualEnd = rr.ReturnDate
		}
	}

	if err := tx.Contracts().Finalize(ctx, contractID, finalCents, actualEnd); err != nil {
		return err
	}
	logger.Info("Contract finalized", "contract_id", contractID,
		"final_amount_cents", finalCents, "actual_end_date", actualEnd.Format("2006-01-02"))
	return nil
}
