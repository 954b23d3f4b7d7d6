package http

import (
	"encoding/json"
	"net/http"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type paymentRequest struct {
	AmountCents  int64  `json:"amount_cents"`
	PaymentDate  string `json:"payment_date"`
	Method       string `json:"method"`
	Reference    string `json:"reference"`
	DocumentLink string `json:"document_link"`
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	date, err := parseDate(req.PaymentDate, "payment_date")
	if err != nil {
		writeError(w, err)
		return
	}

	record, err := h.svc.RecordPayment(r.Context(), service.PaymentRequest{
		ContractID:   contractID,
		AmountCents:  req.AmountCents,
		PaymentDate:  date,
		Method:       domain.PaymentMethod(req.Method),
		Reference:    req.Reference,
		DocumentLink: req.DocumentLink,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Payment recorded", "payment_id", record.ID, "contract_id", contractID, "acting_user", user)
	writeJSON(w, http.StatusCreated, record)
}

func (h *PaymentHandler) Settlement(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.svc.GetSettlementSummary(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
