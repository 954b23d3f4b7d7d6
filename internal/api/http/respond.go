package http

import (
	"encoding/json"
	"net/http"
	"time"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/logger"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Kind    string `json:"kind"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict, domain.KindState:
		status = http.StatusConflict
	case domain.KindTransient:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Kind: string(kind), Code: domain.CodeOf(err), Message: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Kind: string(domain.KindValidation), Message: message})
}

// actingUser extracts the caller-supplied identity. Role checks happen before
// this service is invoked; the header is required for the audit trail only.
func actingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := r.Header.Get("X-Acting-User")
	if user == "" {
		writeBadRequest(w, "missing X-Acting-User header")
		return "", false
	}
	return user, true
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.CodeInvalidDateRange, "%s: want YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}
