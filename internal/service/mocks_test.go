package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/repository"
)

// mockStore satisfies repository.Store; ExecTx invokes fn against the store
// itself so the services see the same mock repos inside and outside the
// transaction.
type mockStore struct {
	tools     *MockToolRepo
	parties   *MockPartyRepo
	contracts *MockContractRepo
	returns   *MockReturnRepo
	payments  *MockPaymentRepo
	deposits  *MockDepositRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		tools:     new(MockToolRepo),
		parties:   new(MockPartyRepo),
		contracts: new(MockContractRepo),
		returns:   new(MockReturnRepo),
		payments:  new(MockPaymentRepo),
		deposits:  new(MockDepositRepo),
	}
}

func (m *mockStore) Tools() repository.ToolRepository         { return m.tools }
func (m *mockStore) Parties() repository.PartyRepository      { return m.parties }
func (m *mockStore) Contracts() repository.ContractRepository { return m.contracts }
func (m *mockStore) Returns() repository.ReturnRepository     { return m.returns }
func (m *mockStore) Payments() repository.PaymentRepository   { return m.payments }
func (m *mockStore) Deposits() repository.DepositRepository   { return m.deposits }

func (m *mockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(m)
}

func (m *mockStore) assertExpectations(t mock.TestingT) {
	m.tools.AssertExpectations(t)
	m.parties.AssertExpectations(t)
	m.contracts.AssertExpectations(t)
	m.returns.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.deposits.AssertExpectations(t)
}

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) GetByID(ctx context.Context, id int64) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}
func (m *MockToolRepo) Reserve(ctx context.Context, toolID int64, qty int32) error {
	args := m.Called(ctx, toolID, qty)
	return args.Error(0)
}
func (m *MockToolRepo) Release(ctx context.Context, toolID int64, qty int32) error {
	args := m.Called(ctx, toolID, qty)
	return args.Error(0)
}

// MockPartyRepo
type MockPartyRepo struct {
	mock.Mock
}

func (m *MockPartyRepo) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockPartyRepo) GetOperator(ctx context.Context, id int64) (*domain.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContractRepo) CreateLineItem(ctx context.Context, li *domain.LineItem) error {
	args := m.Called(ctx, li)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) GetLineItem(ctx context.Context, id int64) (*domain.LineItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LineItem), args.Error(1)
}
func (m *MockContractRepo) ListLineItems(ctx context.Context, contractID int64) ([]domain.LineItem, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}
func (m *MockContractRepo) SumReservedQuantity(ctx context.Context, contractID int64) (int32, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockContractRepo) UpdateMutable(ctx context.Context, id int64, deliveryMode *domain.DeliveryMode, notes *string, depositCents *int64) error {
	args := m.Called(ctx, id, deliveryMode, notes, depositCents)
	return args.Error(0)
}
func (m *MockContractRepo) SetStatus(ctx context.Context, id int64, status domain.ContractStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockContractRepo) Finalize(ctx context.Context, id int64, finalAmountCents int64, actualEnd time.Time) error {
	args := m.Called(ctx, id, finalAmountCents, actualEnd)
	return args.Error(0)
}
func (m *MockContractRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockContractRepo) List(ctx context.Context, status domain.ContractStatus, page, pageSize int32) ([]domain.Contract, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Contract), args.Get(1).(int32), args.Error(2)
}

// MockReturnRepo
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) Create(ctx context.Context, rr *domain.ReturnRecord) error {
	args := m.Called(ctx, rr)
	return args.Error(0)
}
func (m *MockReturnRepo) SumReturnedByLine(ctx context.Context, lineItemID int64) (int32, error) {
	args := m.Called(ctx, lineItemID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockReturnRepo) SumReturnedByContract(ctx context.Context, contractID int64) (int32, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockReturnRepo) SumChargedByContract(ctx context.Context, contractID int64) (int64, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReturnRepo) ListByContract(ctx context.Context, contractID int64) ([]domain.ReturnRecord, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnRecord), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) SumByContract(ctx context.Context, contractID int64) (int64, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) ListByContract(ctx context.Context, contractID int64) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

// MockDepositRepo
type MockDepositRepo struct {
	mock.Mock
}

func (m *MockDepositRepo) CreatePayment(ctx context.Context, dp *domain.DepositPayment) error {
	args := m.Called(ctx, dp)
	return args.Error(0)
}
func (m *MockDepositRepo) GetPayment(ctx context.Context, contractID int64) (*domain.DepositPayment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositPayment), args.Error(1)
}
func (m *MockDepositRepo) CreateRefund(ctx context.Context, dr *domain.DepositRefund) error {
	args := m.Called(ctx, dr)
	return args.Error(0)
}
func (m *MockDepositRepo) GetRefund(ctx context.Context, contractID int64) (*domain.DepositRefund, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositRefund), args.Error(1)
}
