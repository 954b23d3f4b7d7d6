package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/service"
)

// MockContractService
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) CreateContract(ctx context.Context, req service.CreateContractRequest) (*domain.Contract, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) GetContract(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) ListContracts(ctx context.Context, status domain.ContractStatus, page, pageSize int32) ([]domain.Contract, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Contract), args.Get(1).(int32), args.Error(2)
}
func (m *MockContractService) CancelContract(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) UpdateContract(ctx context.Context, id int64, req service.UpdateContractRequest) (*domain.Contract, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

// MockReturnService
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) RecordReturn(ctx context.Context, req service.ReturnRequest) (*domain.ReturnRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRecord), args.Error(1)
}
func (m *MockReturnService) RecordReturnBatch(ctx context.Context, reqs []service.ReturnRequest) ([]domain.ReturnRecord, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnRecord), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, req service.PaymentRequest) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}
func (m *MockPaymentService) GetSettlementSummary(ctx context.Context, contractID int64) (*domain.SettlementSummary, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSummary), args.Error(1)
}

// MockDepositService
type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) PayDeposit(ctx context.Context, req service.DepositPaymentRequest) (*domain.DepositPayment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositPayment), args.Error(1)
}
func (m *MockDepositService) SuggestRefund(ctx context.Context, contractID int64) (*domain.RefundSuggestion, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundSuggestion), args.Error(1)
}
func (m *MockDepositService) RefundDeposit(ctx context.Context, req service.DepositRefundRequest) (*domain.DepositRefund, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositRefund), args.Error(1)
}
