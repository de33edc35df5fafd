package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Prefix is where the API is mounted
const Prefix = "/api/v1"

// Routes registers the API endpoints on r under Prefix
func (h *Handler) Routes(r chi.Router) {
	r.Route(Prefix, func(r chi.Router) {
		r.Get("/dataset", h.handleDataset)
		r.Get("/sites", h.handleSites)
		r.Get("/summary", h.handleSummary)
		r.Get("/outcomes", h.handleOutcomes)
		r.Get("/correlation", h.handleCorrelation)
		r.Get("/figures/outcomes.svg", h.handleOutcomesFigure)
		r.Get("/figures/correlation.svg", h.handleCorrelationFigure)
	})
}

// NewRouter builds a chi router serving only the API. withAccessLog adds
// chi's request logger; it is off when the router is mounted inside a server
// that already logs requests.
func NewRouter(h *Handler, withAccessLog bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if withAccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "application/json", "image/svg+xml"))

	h.Routes(r)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found", "code": "NOT_FOUND"})
	})
	return r
}
