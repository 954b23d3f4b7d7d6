package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/service"
)

type ContractHandler struct {
	svc service.ContractService
}

func NewContractHandler(svc service.ContractService) *ContractHandler {
	return &ContractHandler{svc: svc}
}

type createContractRequest struct {
	CustomerID       int64                       `json:"customer_id"`
	OperatorID       int64                       `json:"operator_id"`
	StartDate        string                      `json:"start_date"`
	EstimatedEndDate string                      `json:"estimated_end_date"`
	DeliveryMode     string                      `json:"delivery_mode"`
	Notes            string                      `json:"notes"`
	Lines            []service.CreateLineRequest `json:"lines"`
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req createContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EstimatedEndDate, "estimated_end_date")
	if err != nil {
		writeError(w, err)
		return
	}

	contract, err := h.svc.CreateContract(r.Context(), service.CreateContractRequest{
		CustomerID:       req.CustomerID,
		OperatorID:       req.OperatorID,
		StartDate:        start,
		EstimatedEndDate: end,
		DeliveryMode:     domain.DeliveryMode(req.DeliveryMode),
		Notes:            req.Notes,
		Lines:            req.Lines,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("Contract created", "contract_id", contract.ID, "acting_user", user)
	writeJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	contract, err := h.svc.GetContract(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)
	status := domain.ContractStatus(q.Get("status"))

	contracts, total, err := h.svc.ListContracts(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contracts": contracts, "total": total})
}

func (h *ContractHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	contract, err := h.svc.CancelContract(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Contract cancelled", "contract_id", id, "acting_user", user)
	writeJSON(w, http.StatusOK, contract)
}

type updateContractRequest struct {
	DeliveryMode       *string `json:"delivery_mode,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	DepositAmountCents *int64  `json:"deposit_amount_cents,omitempty"`
}

func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := actingUser(w, r); !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	var mode *domain.DeliveryMode
	if req.DeliveryMode != nil {
		m := domain.DeliveryMode(*req.DeliveryMode)
		mode = &m
	}

	contract, err := h.svc.UpdateContract(r.Context(), id, service.UpdateContractRequest{
		DeliveryMode:       mode,
		Notes:              req.Notes,
		DepositAmountCents: req.DepositAmountCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(domain.CodeInvalidIdentifier, "invalid %s in path", name)
	}
	return id, nil
}

func queryInt32(value string, fallback int32) int32 {
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
