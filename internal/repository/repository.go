package repository

import (
	"context"
	"time"

	"toolrent-core/internal/domain"
)

// Store bundles every repository and the transaction boundary. ExecTx runs fn
// against a Store scoped to one database transaction; a nested ExecTx on that
// scoped Store joins the same transaction. All multi-entity mutations in the
// services go through ExecTx so a failure at any step rolls back every effect
// of the call.
type Store interface {
	Tools() ToolRepository
	Parties() PartyRepository
	Contracts() ContractRepository
	Returns() ReturnRepository
	Payments() PaymentRepository
	Deposits() DepositRepository

	ExecTx(ctx context.Context, fn func(Store) error) error
}

// ToolRepository is the inventory ledger plus the catalog lookup collaborator.
// Reserve and Release must be single conditional updates, serialized per tool
// by the database itself, never read-then-write.
type ToolRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tool, error)
	Reserve(ctx context.Context, toolID int64, qty int32) error
	Release(ctx context.Context, toolID int64, qty int32) error
}

type PartyRepository interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetOperator(ctx context.Context, id int64) (*domain.Operator, error)
}

type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	CreateLineItem(ctx context.Context, li *domain.LineItem) error
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	// GetByIDForUpdate takes the contract row lock for the rest of the
	// enclosing transaction; the lock is the per-contract serialization unit.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Contract, error)
	GetLineItem(ctx context.Context, id int64) (*domain.LineItem, error)
	ListLineItems(ctx context.Context, contractID int64) ([]domain.LineItem, error)
	SumReservedQuantity(ctx context.Context, contractID int64) (int32, error)
	UpdateMutable(ctx context.Context, id int64, deliveryMode *domain.DeliveryMode, notes *string, depositCents *int64) error
	SetStatus(ctx context.Context, id int64, status domain.ContractStatus) error
	Finalize(ctx context.Context, id int64, finalAmountCents int64, actualEnd time.Time) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context, status domain.ContractStatus, page, pageSize int32) ([]domain.Contract, int32, error)
}

type ReturnRepository interface {
	Create(ctx context.Context, rr *domain.ReturnRecord) error
	SumReturnedByLine(ctx context.Context, lineItemID int64) (int32, error)
	SumReturnedByContract(ctx context.Context, contractID int64) (int32, error)
	SumChargedByContract(ctx context.Context, contractID int64) (int64, error)
	ListByContract(ctx context.Context, contractID int64) ([]domain.ReturnRecord, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PaymentRecord) error
	SumByContract(ctx context.Context, contractID int64) (int64, error)
	ListByContract(ctx context.Context, contractID int64) ([]domain.PaymentRecord, error)
}

// DepositRepository stores at most one payment and one refund per contract.
// GetPayment and GetRefund return (nil, nil) when no record exists.
type DepositRepository interface {
	CreatePayment(ctx context.Context, dp *domain.DepositPayment) error
	GetPayment(ctx context.Context, contractID int64) (*domain.DepositPayment, error)
	CreateRefund(ctx context.Context, dr *domain.DepositRefund) error
	GetRefund(ctx context.Context, contractID int64) (*domain.DepositRefund, error)
}
