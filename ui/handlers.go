package ui

import (
	"log"
	"net/http"

	"launchdash/adapters/chart"
	"launchdash/domain/launch"
	"launchdash/internal/api"
	"launchdash/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleIndex renders the full dashboard for the default selection
func (s *Server) handleIndex(c *gin.Context) {
	d := s.app.Dataset
	sel := launch.DefaultSelection(d)

	summaries, err := s.app.Summaries.SiteSummaries(d)
	if err != nil {
		log.Printf("[Index] Error summarizing sites: %v", err)
	}

	dash := s.dashboard()
	s.renderTemplate(c, "index.html", IndexView{
		Title:       dash.Title,
		About:       s.about,
		DatasetID:   d.ID().Short(),
		Source:      d.Source(),
		Records:     d.Len(),
		SiteOptions: s.app.SiteOptions(),
		Selection:   sel,
		Range:       newRangeControl(d.PayloadBounds(), dash.SliderStep, dash.MarkStep),
		Outcomes:    s.outcomesView(sel),
		Correlation: s.correlationView(sel),
		Summaries:   summaries,
	})
}

// handleOutcomesFragment re-renders the proportions chart for ?site=
func (s *Server) handleOutcomesFragment(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	s.renderTemplate(c, "fragments/outcomes.html", s.outcomesView(sel))
}

// handleCorrelationFragment re-renders the scatter chart for ?site=&low=&high=
func (s *Server) handleCorrelationFragment(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	s.renderTemplate(c, "fragments/correlation.html", s.correlationView(sel))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"dataset_id":  s.app.Dataset.ID(),
		"fingerprint": s.app.Dataset.Fingerprint(),
		"records":     s.app.Dataset.Len(),
		"source":      s.app.Dataset.Source(),
	})
}

func (s *Server) selection(c *gin.Context) (launch.Selection, bool) {
	sel, err := api.ParseSelection(c.Request.URL.Query(), s.app.Dataset)
	if err != nil {
		c.String(errors.HTTPStatus(err), err.Error())
		return sel, false
	}
	return sel, true
}

func (s *Server) outcomesView(sel launch.Selection) OutcomesView {
	return OutcomesView{
		Aggregation: s.app.Transformer.ComputeOutcomeAggregation(s.app.Dataset, sel),
		FigureURL:   figureURL(chart.KindOutcomes, sel),
	}
}

func (s *Server) correlationView(sel launch.Selection) CorrelationView {
	sub := s.app.Transformer.ComputeCorrelationSubset(s.app.Dataset, sel)
	return CorrelationView{
		Subset:    sub,
		Summary:   s.app.Summaries.Correlation(sub),
		FigureURL: figureURL(chart.KindCorrelation, sel),
	}
}
