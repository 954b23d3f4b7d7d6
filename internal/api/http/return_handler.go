package http

import (
	"encoding/json"
	"net/http"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
	"toolrent-core/internal/service"
)

type ReturnHandler struct {
	svc service.ReturnService
}

func NewReturnHandler(svc service.ReturnService) *ReturnHandler {
	return &ReturnHandler{svc: svc}
}

type returnRequest struct {
	LineItemID int64  `json:"line_item_id"`
	Quantity   int32  `json:"quantity"`
	ReturnDate string `json:"return_date"`
	Condition  string `json:"condition"`
	Notes      string `json:"notes"`
}

func (rr returnRequest) toService() (service.ReturnRequest, error) {
	date, err := parseDate(rr.ReturnDate, "return_date")
	if err != nil {
		return service.ReturnRequest{}, err
	}
	return service.ReturnRequest{
		LineItemID: rr.LineItemID,
		Quantity:   rr.Quantity,
		ReturnDate: date,
		Condition:  domain.ReturnCondition(rr.Condition),
		Notes:      rr.Notes,
	}, nil
}

func (h *ReturnHandler) Record(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	svcReq, err := req.toService()
	if err != nil {
		writeError(w, err)
		return
	}

	record, err := h.svc.RecordReturn(r.Context(), svcReq)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Return recorded", "return_id", record.ID, "acting_user", user)
	writeJSON(w, http.StatusCreated, record)
}

type batchReturnRequest struct {
	Returns []returnRequest `json:"returns"`
}

func (h *ReturnHandler) RecordBatch(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req batchReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	svcReqs := make([]service.ReturnRequest, 0, len(req.Returns))
	for _, entry := range req.Returns {
		svcReq, err := entry.toService()
		if err != nil {
			writeError(w, err)
			return
		}
		svcReqs = append(svcReqs, svcReq)
	}

	records, err := h.svc.RecordReturnBatch(r.Context(), svcReqs)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Return batch recorded", "count", len(records), "acting_user", user)
	writeJSON(w, http.StatusCreated, map[string]any{"returns": records})
}
