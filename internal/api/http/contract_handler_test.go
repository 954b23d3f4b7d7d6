package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/service"
)

func testRouter(contracts service.ContractService, returns service.ReturnService,
	payments service.PaymentService, deposits service.DepositService) *mux.Router {
	if contracts == nil {
		contracts = new(MockContractService)
	}
	if returns == nil {
		returns = new(MockReturnService)
	}
	if payments == nil {
		payments = new(MockPaymentService)
	}
	if deposits == nil {
		deposits = new(MockDepositService)
	}
	return NewRouter(contracts, returns, payments, deposits)
}

func doJSON(t *testing.T, router *mux.Router, method, target string, body any, withUser bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if withUser {
		req.Header.Set("X-Acting-User", "operator-2")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContractHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockContractService)
		svc.On("CreateContract", mock.Anything, mock.AnythingOfType("service.CreateContractRequest")).
			Return(&domain.Contract{ID: 42, Status: domain.ContractStatusActive}, nil)
		router := testRouter(svc, nil, nil, nil)

		rec := doJSON(t, router, http.MethodPost, "/contracts", map[string]any{
			"customer_id":        1,
			"operator_id":        2,
			"start_date":         "2026-03-01",
			"estimated_end_date": "2026-03-04",
			"delivery_mode":      "PICKUP",
			"lines":              []map[string]any{{"tool_id": 7, "quantity": 2, "rental_days": 3}},
		}, true)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var contract domain.Contract
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contract))
		assert.Equal(t, int64(42), contract.ID)
	})

	t.Run("Missing acting user header", func(t *testing.T) {
		svc := new(MockContractService)
		router := testRouter(svc, nil, nil, nil)

		rec := doJSON(t, router, http.MethodPost, "/contracts", map[string]any{}, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
	})

	t.Run("Malformed date", func(t *testing.T) {
		svc := new(MockContractService)
		router := testRouter(svc, nil, nil, nil)

		rec := doJSON(t, router, http.MethodPost, "/contracts", map[string]any{
			"start_date":         "03/01/2026",
			"estimated_end_date": "2026-03-04",
		}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Insufficient stock maps to conflict", func(t *testing.T) {
		svc := new(MockContractService)
		svc.On("CreateContract", mock.Anything, mock.Anything).
			Return(nil, domain.NewConflictError(domain.CodeInsufficientStock, "tool 7: requested 5, on hand 2"))
		router := testRouter(svc, nil, nil, nil)

		rec := doJSON(t, router, http.MethodPost, "/contracts", map[string]any{
			"start_date":         "2026-03-01",
			"estimated_end_date": "2026-03-04",
		}, true)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.CodeInsufficientStock, resp.Code)
	})
}

func TestContractHandler_Get(t *testing.T) {
	t.Run("Not found", func(t *testing.T) {
		svc := new(MockContractService)
		svc.On("GetContract", mock.Anything, int64(99)).
			Return(nil, domain.NewNotFoundError("contract 99 not found"))
		router := testRouter(svc, nil, nil, nil)

		rec := doJSON(t, router, http.MethodGet, "/contracts/99", nil, false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Invalid id in path", func(t *testing.T) {
		router := testRouter(nil, nil, nil, nil)
		rec := doJSON(t, router, http.MethodGet, "/contracts/abc", nil, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.CodeInvalidIdentifier, resp.Code)
	})
}

func TestContractHandler_Cancel(t *testing.T) {
	t.Run("State error maps to conflict", func(t *testing.T) {
		svc := new(MockContractService)
		svc.On("CancelContract", mock.Anything, int64(42)).
			Return(nil, domain.NewStateError(domain.CodeInvalidState, "contract 42 is FINALIZED"))
		router := testRouter(svc, nil, nil, nil)

		rec := doJSON(t, router, http.MethodPost, "/contracts/42/cancel", nil, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPaymentHandler_Settlement(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("GetSettlementSummary", mock.Anything, int64(42)).Return(&domain.SettlementSummary{
		ContractID:      42,
		AmountDueCents:  9000,
		AmountPaidCents: 4000,
		BalanceCents:    5000,
		Status:          domain.PaymentStatusPartiallyPaid,
	}, nil)
	router := testRouter(nil, nil, svc, nil)

	rec := doJSON(t, router, http.MethodGet, "/contracts/42/settlement", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	var summary domain.SettlementSummary
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, int64(5000), summary.BalanceCents)
	assert.Equal(t, domain.PaymentStatusPartiallyPaid, summary.Status)
}

func TestReturnHandler_Record(t *testing.T) {
	t.Run("Transient failure maps to service unavailable", func(t *testing.T) {
		svc := new(MockReturnService)
		svc.On("RecordReturn", mock.Anything, mock.Anything).
			Return(nil, domain.NewTransientError(nil, "reserve tool: connection failure"))
		router := testRouter(nil, svc, nil, nil)

		rec := doJSON(t, router, http.MethodPost, "/returns", map[string]any{
			"line_item_id": 11,
			"quantity":     1,
			"return_date":  "2026-03-04",
			"condition":    "GOOD",
		}, true)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	router := testRouter(nil, nil, nil, nil)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}
