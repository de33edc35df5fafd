package ui

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strconv"

	"launchdash/adapters/chart"
	"launchdash/app"
	"launchdash/domain/launch"
	"launchdash/internal/api"
)

// maxMarks bounds the tick labels under the range control
const maxMarks = 50

// Mark is one labelled tick under the payload range control
type Mark struct {
	Value float64
	Label string
}

// RangeControl describes the two-handle payload slider
type RangeControl struct {
	Min   float64
	Max   float64
	Step  float64
	Low   float64
	High  float64
	Marks []Mark
}

// OutcomesView feeds fragments/outcomes.html
type OutcomesView struct {
	Aggregation launch.OutcomeAggregation
	FigureURL   string
}

// CorrelationView feeds fragments/correlation.html
type CorrelationView struct {
	Subset    launch.CorrelationSubset
	Summary   app.CorrelationSummary
	FigureURL string
}

// IndexView feeds index.html
type IndexView struct {
	Title       string
	About       template.HTML
	DatasetID   string
	Source      string
	Records     int
	SiteOptions []launch.SiteOption
	Selection   launch.Selection
	Range       RangeControl
	Outcomes    OutcomesView
	Correlation CorrelationView
	Summaries   []app.SiteSummary
}

// newRangeControl snaps the dataset bounds outwards to whole steps. Range
// inputs round their value to the step grid, so the handles start on the
// snapped limits, which still cover every record.
func newRangeControl(bounds launch.PayloadRange, step, markStep float64) RangeControl {
	rc := RangeControl{
		Min:  math.Floor(bounds.Low/step) * step,
		Max:  math.Ceil(bounds.High/step) * step,
		Step: step,
	}
	if rc.Max <= rc.Min {
		rc.Max = rc.Min + step
	}
	rc.Low, rc.High = rc.Min, rc.Max

	for v := math.Ceil(rc.Min/markStep) * markStep; v <= rc.Max && len(rc.Marks) < maxMarks; v += markStep {
		rc.Marks = append(rc.Marks, Mark{Value: v, Label: formatKg(v)})
	}
	return rc
}

func figureURL(kind string, sel launch.Selection) string {
	q := url.Values{}
	q.Set("site", sel.Site)
	if kind == chart.KindCorrelation {
		q.Set("low", formatNumber(sel.Payload.Low))
		q.Set("high", formatNumber(sel.Payload.High))
	}
	return api.Prefix + "/figures/" + kind + ".svg?" + q.Encode()
}

// formatKg is the display form of a payload mass
func formatKg(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// formatNumber is the exact form used in query strings and input values
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
