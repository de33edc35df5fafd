package chart

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"launchdash/domain/launch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSVG(t *testing.T, fig *Figure, kind string) {
	t.Helper()
	require.NotNil(t, fig)
	assert.Equal(t, kind, fig.Kind)
	assert.Equal(t, ContentTypeSVG, fig.ContentType)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(fig.Body)), "<svg"), "body is not SVG")
	assert.Contains(t, string(fig.Body), "</svg>")
	assertWellFormed(t, fig.Body)
}

func assertWellFormed(t *testing.T, body []byte) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(body)))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, "figure is not well-formed XML")
	}
}

func TestRenderOutcomesBySite(t *testing.T) {
	r := NewRenderer(RenderConfig{Width: 400, Height: 300, Sites: []string{"A", "B"}})

	fig, err := r.RenderOutcomes(launch.OutcomeAggregation{
		Site:     launch.AllSites,
		Title:    "Total Success Launches by Site",
		Category: launch.CategoryBySite,
		Categories: []launch.OutcomeCategory{
			{Label: "A", Count: 2},
			{Label: "B", Count: 1},
			{Label: "C", Count: 0},
		},
	})
	require.NoError(t, err)
	assertSVG(t, fig, KindOutcomes)
	assert.Equal(t, "Total Success Launches by Site", fig.Title)
	assert.Contains(t, string(fig.Body), "A (2)")
	assert.NotContains(t, string(fig.Body), "C (0)")
}

func TestRenderOutcomesSingleCategory(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())

	fig, err := r.RenderOutcomes(launch.OutcomeAggregation{
		Site:       "A",
		Title:      "Total Success vs. Failure Launches for site A",
		Category:   launch.CategoryByOutcome,
		Categories: []launch.OutcomeCategory{{Label: "Success", Count: 3}},
	})
	require.NoError(t, err)
	assertSVG(t, fig, KindOutcomes)
}

func TestRenderOutcomesEmpty(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())

	for _, agg := range []launch.OutcomeAggregation{
		{Site: "C", Title: "Total Success vs. Failure Launches for site C", Category: launch.CategoryByOutcome},
		{Site: launch.AllSites, Title: "Total Success Launches by Site", Category: launch.CategoryBySite,
			Categories: []launch.OutcomeCategory{{Label: "A", Count: 0}}},
	} {
		fig, err := r.RenderOutcomes(agg)
		require.NoError(t, err)
		assertSVG(t, fig, KindOutcomes)
	}
}

func TestRenderCorrelation(t *testing.T) {
	r := NewRenderer(RenderConfig{Width: 600, Height: 400, Sites: []string{"A", "B"}})

	sub := launch.CorrelationSubset{
		Site:  launch.AllSites,
		Range: launch.PayloadRange{Low: 0, High: 1000},
		Title: "Correlation between Payload and Success for all sites",
		Records: []launch.Record{
			{Site: "A", PayloadKg: 100, Outcome: launch.OutcomeSuccess},
			{Site: "B", PayloadKg: 500, Outcome: launch.OutcomeFailure},
			{Site: "A", PayloadKg: 900, Outcome: launch.OutcomeFailure},
		},
	}

	fig, err := r.RenderCorrelation(sub, launch.PayloadRange{Low: 0, High: 1000})
	require.NoError(t, err)
	assertSVG(t, fig, KindCorrelation)
}

func TestRenderCorrelationEmptyKeepsAxes(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())

	sub := launch.CorrelationSubset{Site: "C", Title: "Correlation between Payload and Success for C", Records: []launch.Record{}}
	fig, err := r.RenderCorrelation(sub, launch.PayloadRange{Low: 0, High: 9600})
	require.NoError(t, err)
	assertSVG(t, fig, KindCorrelation)
}

func TestRenderCorrelationDegenerateAxis(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())

	sub := launch.CorrelationSubset{Site: "A", Records: []launch.Record{{Site: "A", PayloadKg: 500, Outcome: launch.OutcomeSuccess}}}
	fig, err := r.RenderCorrelation(sub, launch.PayloadRange{Low: 500, High: 500})
	require.NoError(t, err)
	assertSVG(t, fig, KindCorrelation)
}

func TestRenderEscapesSiteText(t *testing.T) {
	r := NewRenderer(RenderConfig{Width: 600, Height: 400, Sites: []string{"R&D <1>"}})

	sub := launch.CorrelationSubset{
		Site:    "R&D <1>",
		Title:   "Correlation between Payload and Success for R&D <1>",
		Records: []launch.Record{{Site: "R&D <1>", PayloadKg: 300, Outcome: launch.OutcomeSuccess}},
	}
	fig, err := r.RenderCorrelation(sub, launch.PayloadRange{Low: 0, High: 1000})
	require.NoError(t, err)
	assertSVG(t, fig, KindCorrelation)
	assert.Equal(t, sub.Title, fig.Title)
	assert.Contains(t, string(fig.Body), "R&amp;D &lt;1&gt;")

	fig, err = r.RenderOutcomes(launch.OutcomeAggregation{
		Site:       "R&D <1>",
		Title:      "Total Success vs. Failure Launches for site R&D <1>",
		Category:   launch.CategoryByOutcome,
		Categories: []launch.OutcomeCategory{{Label: "Success", Count: 1}},
	})
	require.NoError(t, err)
	assertSVG(t, fig, KindOutcomes)

	fig, err = r.RenderCorrelation(launch.CorrelationSubset{Site: "<x>", Title: "for <x> & co"}, launch.PayloadRange{Low: 0, High: 10})
	require.NoError(t, err)
	assertSVG(t, fig, KindCorrelation)
}

func TestSiteColorIsStable(t *testing.T) {
	r := NewRenderer(RenderConfig{Sites: []string{"A", "B"}})
	assert.Equal(t, r.SiteColor("A"), r.SiteColor("A"))
	assert.NotEqual(t, r.SiteColor("A"), r.SiteColor("B"))
	assert.Equal(t, r.SiteColor("unlisted"), r.SiteColor("unlisted"))
}

func TestPaddedRange(t *testing.T) {
	assert.Equal(t, launch.PayloadRange{Low: 0, High: 10}, paddedRange(launch.PayloadRange{Low: 0, High: 10}))
	assert.Equal(t, launch.PayloadRange{Low: 4, High: 6}, paddedRange(launch.PayloadRange{Low: 5, High: 5}))
}
