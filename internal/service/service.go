package service

import (
	"context"
	"time"

	"toolrent-core/internal/domain"
)

type CreateLineRequest struct {
	ToolID     int64 `json:"tool_id"`
	Quantity   int32 `json:"quantity"`
	RentalDays int32 `json:"rental_days"`
}

type CreateContractRequest struct {
	CustomerID       int64               `json:"customer_id"`
	OperatorID       int64               `json:"operator_id"`
	StartDate        time.Time           `json:"start_date"`
	EstimatedEndDate time.Time           `json:"estimated_end_date"`
	DeliveryMode     domain.DeliveryMode `json:"delivery_mode"`
	Notes            string              `json:"notes"`
	Lines            []CreateLineRequest `json:"lines"`
}

type UpdateContractRequest struct {
	DeliveryMode       *domain.DeliveryMode `json:"delivery_mode,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	DepositAmountCents *int64               `json:"deposit_amount_cents,omitempty"`
}

type ReturnRequest struct {
	LineItemID int64                  `json:"line_item_id"`
	Quantity   int32                  `json:"quantity"`
	ReturnDate time.Time              `json:"return_date"`
	Condition  domain.ReturnCondition `json:"condition"`
	Notes      string                 `json:"notes"`
}

type PaymentRequest struct {
	ContractID   int64                `json:"contract_id"`
	AmountCents  int64                `json:"amount_cents"`
	PaymentDate  time.Time            `json:"payment_date"`
	Method       domain.PaymentMethod `json:"method"`
	Reference    string               `json:"reference"`
	DocumentLink string               `json:"document_link"`
}

type DepositPaymentRequest struct {
	ContractID  int64                `json:"contract_id"`
	AmountCents int64                `json:"amount_cents"`
	PaymentDate time.Time            `json:"payment_date"`
	Method      domain.PaymentMethod `json:"method"`
	Reference   string               `json:"reference"`
}

type DepositRefundRequest struct {
	ContractID  int64                `json:"contract_id"`
	RefundDate  time.Time            `json:"refund_date"`
	Method      domain.PaymentMethod `json:"method"`
	Reference   string               `json:"reference"`
	AmountCents *int64               `json:"amount_cents,omitempty"`
}

type ContractService interface {
	CreateContract(ctx context.Context, req CreateContractRequest) (*domain.Contract, error)
	GetContract(ctx context.Context, id int64) (*domain.Contract, error)
	ListContracts(ctx context.Context, status domain.ContractStatus, page, pageSize int32) ([]domain.Contract, int32, error)
	CancelContract(ctx context.Context, id int64) (*domain.Contract, error)
	UpdateContract(ctx context.Context, id int64, req UpdateContractRequest) (*domain.Contract, error)
}

type ReturnService interface {
	RecordReturn(ctx context.Context, req ReturnRequest) (*domain.ReturnRecord, error)
	// RecordReturnBatch processes all requests inside one transaction; the
	// first invalid entry rejects the whole batch.
	RecordReturnBatch(ctx context.Context, reqs []ReturnRequest) ([]domain.ReturnRecord, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, req PaymentRequest) (*domain.PaymentRecord, error)
	GetSettlementSummary(ctx context.Context, contractID int64) (*domain.SettlementSummary, error)
}

type DepositService interface {
	PayDeposit(ctx context.Context, req DepositPaymentRequest) (*domain.DepositPayment, error)
	SuggestRefund(ctx context.Context, contractID int64) (*domain.RefundSuggestion, error)
	RefundDeposit(ctx context.Context, req DepositRefundRequest) (*domain.DepositRefund, error)
}

type LifecycleService interface {
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)
}
