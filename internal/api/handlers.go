package api

import (
	"encoding/json"
	"log"
	"net/http"

	"launchdash/adapters/chart"
	"launchdash/app"
	"launchdash/domain/core"
	"launchdash/domain/launch"
	"launchdash/internal/errors"
	"launchdash/ports"
)

// FigureRenderer draws the two dashboard figures
type FigureRenderer interface {
	RenderOutcomes(agg launch.OutcomeAggregation) (*chart.Figure, error)
	RenderCorrelation(sub launch.CorrelationSubset, axis launch.PayloadRange) (*chart.Figure, error)
}

// Deps are the collaborators the API handlers read from
type Deps struct {
	Dataset     *launch.Dataset
	Transformer ports.DashboardTransformer
	Summaries   *app.SummaryService
	Renderer    FigureRenderer
	SiteOptions []launch.SiteOption
}

// Handler serves the JSON and SVG endpoints
type Handler struct {
	deps Deps
}

// NewHandler creates an API handler
func NewHandler(deps Deps) *Handler {
	if deps.SiteOptions == nil {
		deps.SiteOptions = launch.SiteOptions(deps.Dataset, nil)
	}
	return &Handler{deps: deps}
}

// DatasetInfo describes the loaded dataset
type DatasetInfo struct {
	ID          core.ID             `json:"id"`
	Fingerprint core.Hash           `json:"fingerprint"`
	Source      string              `json:"source"`
	LoadedAt    core.Timestamp      `json:"loaded_at"`
	Records     int                 `json:"records"`
	Sites       []string            `json:"sites"`
	Payload     launch.PayloadRange `json:"payload_bounds"`
}

// OutcomesResponse is the proportions chart data
type OutcomesResponse struct {
	DatasetID   core.ID                   `json:"dataset_id"`
	Selection   launch.Selection          `json:"selection"`
	Aggregation launch.OutcomeAggregation `json:"aggregation"`
}

// CorrelationResponse is the scatter chart data
type CorrelationResponse struct {
	DatasetID core.ID                  `json:"dataset_id"`
	Selection launch.Selection         `json:"selection"`
	Subset    launch.CorrelationSubset `json:"subset"`
	Summary   app.CorrelationSummary   `json:"summary"`
}

func (h *Handler) handleDataset(w http.ResponseWriter, r *http.Request) {
	d := h.deps.Dataset
	writeJSON(w, http.StatusOK, DatasetInfo{
		ID:          d.ID(),
		Fingerprint: d.Fingerprint(),
		Source:      d.Source(),
		LoadedAt:    d.LoadedAt(),
		Records:     d.Len(),
		Sites:       d.Sites(),
		Payload:     d.PayloadBounds(),
	})
}

func (h *Handler) handleSites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"options": h.deps.SiteOptions,
		"default": launch.AllSites,
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.deps.Summaries.SiteSummaries(h.deps.Dataset)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to summarize sites"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": h.deps.Dataset.ID(),
		"sites":      summaries,
	})
}

func (h *Handler) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	sel, err := ParseSelection(r.URL.Query(), h.deps.Dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OutcomesResponse{
		DatasetID:   h.deps.Dataset.ID(),
		Selection:   sel,
		Aggregation: h.deps.Transformer.ComputeOutcomeAggregation(h.deps.Dataset, sel),
	})
}

func (h *Handler) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	sel, err := ParseSelection(r.URL.Query(), h.deps.Dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	sub := h.deps.Transformer.ComputeCorrelationSubset(h.deps.Dataset, sel)
	writeJSON(w, http.StatusOK, CorrelationResponse{
		DatasetID: h.deps.Dataset.ID(),
		Selection: sel,
		Subset:    sub,
		Summary:   h.deps.Summaries.Correlation(sub),
	})
}

func (h *Handler) handleOutcomesFigure(w http.ResponseWriter, r *http.Request) {
	sel, err := ParseSelection(r.URL.Query(), h.deps.Dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	fig, err := h.deps.Renderer.RenderOutcomes(h.deps.Transformer.ComputeOutcomeAggregation(h.deps.Dataset, sel))
	if err != nil {
		writeError(w, errors.RenderError(chart.KindOutcomes, err))
		return
	}
	WriteFigure(w, fig)
}

func (h *Handler) handleCorrelationFigure(w http.ResponseWriter, r *http.Request) {
	sel, err := ParseSelection(r.URL.Query(), h.deps.Dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	sub := h.deps.Transformer.ComputeCorrelationSubset(h.deps.Dataset, sel)
	fig, err := h.deps.Renderer.RenderCorrelation(sub, h.deps.Dataset.PayloadBounds())
	if err != nil {
		writeError(w, errors.RenderError(chart.KindCorrelation, err))
		return
	}
	WriteFigure(w, fig)
}

// WriteFigure serves a rendered figure. Chart titles echo the requested site,
// so the SVG document is locked down against script execution.
func WriteFigure(w http.ResponseWriter, fig *chart.Figure) {
	w.Header().Set("Content-Type", fig.ContentType)
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(fig.Body); err != nil {
		log.Printf("[API] Error writing %s figure: %v", fig.Kind, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
