package service

import (
	"context"
	"sort"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/repository"
	"toolrent-core/internal/utils"
)

type contractService struct {
	store repository.Store
}

func NewContractService(store repository.Store) ContractService {
	return &contractService{store: store}
}

// validatedLine pairs a request line with the catalog snapshot taken during
// validation, so the reservation phase never re-reads the catalog.
type validatedLine struct {
	req  CreateLineRequest
	tool *domain.Tool
}

func (s *contractService) CreateContract(ctx context.Context, req CreateContractRequest) (*domain.Contract, error) {
	logger.EnterMethod("contractService.CreateContract", "customer_id", req.CustomerID, "lines", len(req.Lines))

	if !req.EstimatedEndDate.After(req.StartDate) {
		return nil, domain.NewValidationError(domain.CodeInvalidDateRange,
			"estimated end date %s must be after start date %s",
			req.EstimatedEndDate.Format("2006-01-02"), req.StartDate.Format("2006-01-02"))
	}
	if len(req.Lines) == 0 {
		return nil, domain.NewValidationError(domain.CodeInvalidQuantity, "a contract requires at least one line")
	}
	if !req.DeliveryMode.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidDeliveryMode, "unknown delivery mode %q", string(req.DeliveryMode))
	}

	customer, err := s.store.Parties().GetCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.Active {
		return nil, domain.NewValidationError(domain.CodeInactiveParty, "customer %d (%s) is not active", customer.ID, customer.Name)
	}
	operator, err := s.store.Parties().GetOperator(ctx, req.OperatorID)
	if err != nil {
		return nil, err
	}
	if !operator.Active {
		return nil, domain.NewValidationError(domain.CodeInactiveParty, "operator %d (%s) is not active", operator.ID, operator.Name)
	}

	// Validate every line before touching any stock: one bad line means no
	// reservation happens at all.
	seen := make(map[int64]bool, len(req.Lines))
	lines := make([]validatedLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		if lr.Quantity <= 0 {
			return nil, domain.NewValidationError(domain.CodeInvalidQuantity, "tool %d: quantity must be positive, got %d", lr.ToolID, lr.Quantity)
		}
		if seen[lr.ToolID] {
			return nil, domain.NewValidationError(domain.CodeInvalidQuantity, "tool %d appears in more than one line", lr.ToolID)
		}
		seen[lr.ToolID] = true

		tool, err := s.store.Tools().GetByID(ctx, lr.ToolID)
		if err != nil {
			return nil, err
		}
		if !tool.Active {
			return nil, domain.NewConflictError(domain.CodeToolInactive, "tool %d (%s) is not active", tool.ID, tool.Name)
		}
		if lr.RentalDays < tool.MinimumDays {
			return nil, domain.NewValidationError(domain.CodeBelowMinimumDays,
				"tool %d (%s): %d rental days below minimum %d", tool.ID, tool.Name, lr.RentalDays, tool.MinimumDays)
		}
		if tool.OnHand < lr.Quantity {
			return nil, domain.NewConflictError(domain.CodeInsufficientStock,
				"tool %d (%s): requested %d, on hand %d", tool.ID, tool.Name, lr.Quantity, tool.OnHand)
		}
		lines = append(lines, validatedLine{req: lr, tool: tool})
	}

	// Fixed lock acquisition order across tools: ascending tool id, so two
	// overlapping contract creations cannot deadlock.
	sort.Slice(lines, func(i, j int) bool { return lines[i].tool.ID < lines[j].tool.ID })

	var estimatedCents, depositCents int64
	for _, vl := range lines {
		estimatedCents += utils.LineSubtotal(vl.req.Quantity, vl.tool.DailyRateCents, vl.req.RentalDays)
		depositCents += vl.tool.DepositPerUnitCents * int64(vl.req.Quantity)
	}

	contract := &domain.Contract{
		CustomerID:           req.CustomerID,
		OperatorID:           req.OperatorID,
		StartDate:            req.StartDate,
		EstimatedEndDate:     req.EstimatedEndDate,
		DeliveryMode:         req.DeliveryMode,
		Status:               domain.ContractStatusActive,
		EstimatedAmountCents: estimatedCents,
		DepositAmountCents:   depositCents,
		Notes:                req.Notes,
	}

	err = s.store.ExecTx(ctx, func(tx repository.Store) error {
		if err := tx.Contracts().Create(ctx, contract); err != nil {
			return err
		}
		for i := range lines {
			vl := &lines[i]
			if err := tx.Tools().Reserve(ctx, vl.tool.ID, vl.req.Quantity); err != nil {
				return err
			}
			li := domain.LineItem{
				ContractID:    contract.ID,
				ToolID:        vl.tool.ID,
				ToolName:      vl.tool.Name,
				ToolSKU:       vl.tool.SKU,
				Quantity:      vl.req.Quantity,
				UnitRateCents: vl.tool.DailyRateCents,
				RentalDays:    vl.req.RentalDays,
				SubtotalCents: utils.LineSubtotal(vl.req.Quantity, vl.tool.DailyRateCents, vl.req.RentalDays),
			}
			if err := tx.Contracts().CreateLineItem(ctx, &li); err != nil {
				return err
			}
			contract.LineItems = append(contract.LineItems, li)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("contractService.CreateContract", err, "customer_id", req.CustomerID)
		return nil, err
	}

	logger.ExitMethod("contractService.CreateContract", "contract_id", contract.ID,
		"estimated_amount_cents", contract.EstimatedAmountCents, "deposit_amount_cents", contract.DepositAmountCents)
	return contract, nil
}

func (s *contractService) GetContract(ctx context.Context, id int64) (*domain.Contract, error) {
	contract, err := s.store.Contracts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Contracts().ListLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.LineItems = items
	return contract, nil
}

func (s *contractService) ListContracts(ctx context.Context, status domain.ContractStatus, page, pageSize int32) ([]domain.Contract, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.store.Contracts().List(ctx, status, page, pageSize)
}

func (s *contractService) CancelContract(ctx context.Context, id int64) (*domain.Contract, error) {
	logger.EnterMethod("contractService.CancelContract", "contract_id", id)

	var contract *domain.Contract
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		c, err := tx.Contracts().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c.Status != domain.ContractStatusActive {
			return domain.NewStateError(domain.CodeInvalidState,
				"contract %d is %s, only ACTIVE contracts can be cancelled", c.ID, c.Status)
		}

		items, err := tx.Contracts().ListLineItems(ctx, id)
		if err != nil {
			return err
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ToolID < items[j].ToolID })
		for _, li := range items {
			if err := tx.Tools().Release(ctx, li.ToolID, li.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Contracts().SetStatus(ctx, id, domain.ContractStatusCancelled); err != nil {
			return err
		}
		c.Status = domain.ContractStatusCancelled
		c.LineItems = items
		contract = c
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("contractService.CancelContract", err, "contract_id", id)
		return nil, err
	}

	logger.ExitMethod("contractService.CancelContract", "contract_id", id)
	return contract, nil
}

func (s *contractService) UpdateContract(ctx context.Context, id int64, req UpdateContractRequest) (*domain.Contract, error) {
	if req.DeliveryMode != nil && !req.DeliveryMode.IsValid() {
		return nil, domain.NewValidationError(domain.CodeInvalidDeliveryMode, "unknown delivery mode %q", string(*req.DeliveryMode))
	}

	var contract *domain.Contract
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		c, err := tx.Contracts().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c.Status != domain.ContractStatusActive {
			return domain.NewStateError(domain.CodeContractNotEditable,
				"contract %d is %s and can no longer be edited", c.ID, c.Status)
		}
		if err := tx.Contracts().UpdateMutable(ctx, id, req.DeliveryMode, req.Notes, req.DepositAmountCents); err != nil {
			return err
		}
		contract, err = tx.Contracts().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}
