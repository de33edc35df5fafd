package chart

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"html"

	"launchdash/domain/launch"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Figure kinds
const (
	KindOutcomes    = "outcomes"
	KindCorrelation = "correlation"
)

// ContentTypeSVG is the media type of every rendered figure
const ContentTypeSVG = "image/svg+xml"

// Figure is a rendered chart ready to be served
type Figure struct {
	Kind        string
	Title       string
	ContentType string
	Body        []byte
}

// RenderConfig sizes figures and fixes the site color order
type RenderConfig struct {
	Width  int
	Height int
	// Sites assigns palette colors by position so a site keeps its color
	// across selections. Sites not listed fall back to a hashed color.
	Sites []string
}

// DefaultRenderConfig returns the standard figure size
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{Width: 720, Height: 420}
}

// palette follows the plotly qualitative defaults
var palette = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

var (
	successColor = drawing.ColorFromHex("00cc96")
	failureColor = drawing.ColorFromHex("ef553b")
)

// Renderer draws dashboard figures with go-chart
type Renderer struct {
	width     int
	height    int
	siteIndex map[string]int
}

// NewRenderer creates a renderer
func NewRenderer(cfg RenderConfig) *Renderer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultRenderConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	idx := make(map[string]int, len(cfg.Sites))
	for i, site := range cfg.Sites {
		idx[site] = i
	}
	return &Renderer{width: cfg.Width, height: cfg.Height, siteIndex: idx}
}

// SiteColor returns the color used for a site in both charts
func (r *Renderer) SiteColor(site string) drawing.Color {
	i, ok := r.siteIndex[site]
	if !ok {
		h := fnv.New32a()
		h.Write([]byte(site))
		i = int(h.Sum32())
	}
	return drawing.ColorFromHex(palette[i%len(palette)])
}

// RenderOutcomes draws the proportions chart. Zero-count categories are
// left out of the pie; with nothing left a titled empty figure is returned.
func (r *Renderer) RenderOutcomes(agg launch.OutcomeAggregation) (*Figure, error) {
	values := make([]gochart.Value, 0, len(agg.Categories))
	for _, c := range agg.Categories {
		if c.Count <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: svgText(fmt.Sprintf("%s (%d)", c.Label, c.Count)),
			Value: float64(c.Count),
			Style: gochart.Style{FillColor: r.categoryColor(agg.Category, c.Label)},
		})
	}

	if len(values) == 0 {
		return r.renderEmpty(KindOutcomes, agg.Title)
	}

	pie := gochart.PieChart{
		Title:  svgText(agg.Title),
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render outcomes chart: %w", err)
	}
	return newFigure(KindOutcomes, agg.Title, buf.Bytes()), nil
}

func (r *Renderer) categoryColor(category, label string) drawing.Color {
	if category == launch.CategoryByOutcome {
		if label == launch.LabelSuccess {
			return successColor
		}
		return failureColor
	}
	return r.SiteColor(label)
}

// RenderCorrelation draws payload mass against outcome, one dot series per
// site. axis fixes the x range (normally the dataset payload bounds) so an
// empty subset still renders with axes.
func (r *Renderer) RenderCorrelation(sub launch.CorrelationSubset, axis launch.PayloadRange) (*Figure, error) {
	xRange := paddedRange(axis)

	var series []gochart.Series
	sites, groups := sub.BySite()
	for _, site := range sites {
		records := groups[site]
		xs := make([]float64, len(records))
		ys := make([]float64, len(records))
		for i, rec := range records {
			xs[i] = rec.PayloadKg
			ys[i] = float64(rec.Outcome.Indicator())
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    svgText(site),
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(r.SiteColor(site)),
		})
	}

	empty := len(series) == 0
	if empty {
		series = append(series, placeholderSeries(xRange))
	}

	ch := gochart.Chart{
		Title:      svgText(sub.Title),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           "Payload Mass (kg)",
			Range:          &gochart.ContinuousRange{Min: xRange.Low, Max: xRange.High},
			ValueFormatter: kgFormatter,
		},
		YAxis: gochart.YAxis{
			Name:  "Launch Outcome",
			Range: &gochart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []gochart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	if !empty {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render correlation chart: %w", err)
	}
	return newFigure(KindCorrelation, sub.Title, buf.Bytes()), nil
}

// renderEmpty draws a titled canvas with no data and no axes
func (r *Renderer) renderEmpty(kind, title string) (*Figure, error) {
	hidden := gochart.Style{Hidden: true}
	ch := gochart.Chart{
		Title:      svgText(title),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{FillColor: gochart.ColorWhite},
		XAxis:      gochart.XAxis{Style: hidden},
		YAxis:      gochart.YAxis{Style: hidden},
		Series:     []gochart.Series{placeholderSeries(launch.PayloadRange{Low: 0, High: 1})},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render empty %s chart: %w", kind, err)
	}
	return newFigure(kind, title, buf.Bytes()), nil
}

func newFigure(kind, title string, body []byte) *Figure {
	return &Figure{Kind: kind, Title: title, ContentType: ContentTypeSVG, Body: body}
}

// pointStyle renders points only, no connecting line
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// placeholderSeries gives go-chart the one visible series it requires while
// drawing nothing: no stroke, no dots, transparent color.
func placeholderSeries(rng launch.PayloadRange) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		XValues: []float64{rng.Low, rng.High},
		YValues: []float64{0, 1},
		Style: gochart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: gochart.Disabled,
			DotWidth:    gochart.Disabled,
		},
	}
}

// svgText escapes text for go-chart, which writes SVG text nodes verbatim
func svgText(s string) string {
	return html.EscapeString(s)
}

// paddedRange widens a degenerate axis so go-chart accepts it
func paddedRange(rng launch.PayloadRange) launch.PayloadRange {
	if rng.High > rng.Low {
		return rng
	}
	return launch.PayloadRange{Low: rng.Low - 1, High: rng.Low + 1}
}

func kgFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
