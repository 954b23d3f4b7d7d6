package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolrent-core/internal/service"
)

// NewRouter wires all contract lifecycle routes. Authentication and role
// checks are handled upstream; callers identify themselves through the
// X-Acting-User header on mutating routes.
func NewRouter(
	contracts service.ContractService,
	returns service.ReturnService,
	payments service.PaymentService,
	deposits service.DepositService,
) *mux.Router {
	ch := NewContractHandler(contracts)
	rh := NewReturnHandler(returns)
	ph := NewPaymentHandler(payments)
	dh := NewDepositHandler(deposits)

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/contracts", ch.Create).Methods(http.MethodPost)
	r.HandleFunc("/contracts", ch.List).Methods(http.MethodGet)
	r.HandleFunc("/contracts/{id}", ch.Get).Methods(http.MethodGet)
	r.HandleFunc("/contracts/{id}", ch.Update).Methods(http.MethodPatch)
	r.HandleFunc("/contracts/{id}/cancel", ch.Cancel).Methods(http.MethodPost)

	r.HandleFunc("/returns", rh.Record).Methods(http.MethodPost)
	r.HandleFunc("/returns/batch", rh.RecordBatch).Methods(http.MethodPost)

	r.HandleFunc("/contracts/{id}/payments", ph.Record).Methods(http.MethodPost)
	r.HandleFunc("/contracts/{id}/settlement", ph.Settlement).Methods(http.MethodGet)

	r.HandleFunc("/contracts/{id}/deposit", dh.Pay).Methods(http.MethodPost)
	r.HandleFunc("/contracts/{id}/deposit/suggestion", dh.Suggestion).Methods(http.MethodGet)
	r.HandleFunc("/contracts/{id}/deposit/refund", dh.Refund).Methods(http.MethodPost)

	return r
}
