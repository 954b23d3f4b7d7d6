package http

import (
	"encoding/json"
	"net/http"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/service"
)

type DepositHandler struct {
	svc service.DepositService
}

func NewDepositHandler(svc service.DepositService) *DepositHandler {
	return &DepositHandler{svc: svc}
}

type depositPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	PaymentDate string `json:"payment_date"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
}

func (h *DepositHandler) Pay(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req depositPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	date, err := parseDate(req.PaymentDate, "payment_date")
	if err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.svc.PayDeposit(r.Context(), service.DepositPaymentRequest{
		ContractID:  contractID,
		AmountCents: req.AmountCents,
		PaymentDate: date,
		Method:      domain.PaymentMethod(req.Method),
		Reference:   req.Reference,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Deposit paid", "deposit_id", payment.ID, "contract_id", contractID, "acting_user", user)
	writeJSON(w, http.StatusCreated, payment)
}

func (h *DepositHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	suggestion, err := h.svc.SuggestRefund(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

type depositRefundRequest struct {
	RefundDate  string `json:"refund_date"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
	AmountCents *int64 `json:"amount_cents,omitempty"`
}

func (h *DepositHandler) Refund(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req depositRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	date, err := parseDate(req.RefundDate, "refund_date")
	if err != nil {
		writeError(w, err)
		return
	}

	refund, err := h.svc.RefundDeposit(r.Context(), service.DepositRefundRequest{
		ContractID:  contractID,
		RefundDate:  date,
		Method:      domain.PaymentMethod(req.Method),
		Reference:   req.Reference,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Deposit refunded", "refund_id", refund.ID, "contract_id", contractID, "acting_user", user)
	writeJSON(w, http.StatusCreated, refund)
}
