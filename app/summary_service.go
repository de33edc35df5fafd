package app

import (
	"fmt"
	"math"

	"launchdash/domain/launch"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SiteSummary holds per-site launch statistics shown next to the charts
type SiteSummary struct {
	Site            string  `json:"site"`
	Launches        int     `json:"launches"`
	Successes       int     `json:"successes"`
	SuccessRate     float64 `json:"success_rate"`
	PayloadMeanKg   float64 `json:"payload_mean_kg"`
	PayloadMedianKg float64 `json:"payload_median_kg"`
	PayloadMaxKg    float64 `json:"payload_max_kg"`
}

// CorrelationSummary describes the records currently on the scatter chart
type CorrelationSummary struct {
	Site        string  `json:"site"`
	Records     int     `json:"records"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
	// PointBiserial is the payload/outcome correlation; nil when it is
	// undefined (fewer than two records or a constant column).
	PointBiserial *float64 `json:"point_biserial,omitempty"`
}

// SummaryService computes descriptive statistics over the dataset
type SummaryService struct{}

// NewSummaryService creates a summary service
func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// SiteSummaries returns one summary per site in dataset site order
func (s *SummaryService) SiteSummaries(d *launch.Dataset) ([]SiteSummary, error) {
	payloads := make(map[string][]float64)
	successes := make(map[string]int)
	d.Each(func(r launch.Record) {
		payloads[r.Site] = append(payloads[r.Site], r.PayloadKg)
		successes[r.Site] += r.Outcome.Indicator()
	})

	sites := d.Sites()
	summaries := make([]SiteSummary, 0, len(sites))
	for _, site := range sites {
		data := payloads[site]

		mean, err := stats.Mean(data)
		if err != nil {
			return nil, fmt.Errorf("payload mean for %s: %w", site, err)
		}
		median, err := stats.Median(data)
		if err != nil {
			return nil, fmt.Errorf("payload median for %s: %w", site, err)
		}
		max, err := stats.Max(data)
		if err != nil {
			return nil, fmt.Errorf("payload max for %s: %w", site, err)
		}

		summaries = append(summaries, SiteSummary{
			Site:            site,
			Launches:        len(data),
			Successes:       successes[site],
			SuccessRate:     float64(successes[site]) / float64(len(data)),
			PayloadMeanKg:   mean,
			PayloadMedianKg: median,
			PayloadMaxKg:    max,
		})
	}

	return summaries, nil
}

// Correlation summarizes a correlation subset
func (s *SummaryService) Correlation(sub launch.CorrelationSubset) CorrelationSummary {
	summary := CorrelationSummary{Site: sub.Site, Records: sub.Len()}
	if sub.Len() == 0 {
		return summary
	}

	x := make([]float64, sub.Len())
	y := make([]float64, sub.Len())
	for i, r := range sub.Records {
		x[i] = r.PayloadKg
		y[i] = float64(r.Outcome.Indicator())
		summary.Successes += r.Outcome.Indicator()
	}
	summary.SuccessRate = float64(summary.Successes) / float64(sub.Len())

	if sub.Len() >= 2 {
		r := stat.Correlation(x, y, nil)
		if !math.IsNaN(r) && !math.IsInf(r, 0) {
			summary.PointBiserial = &r
		}
	}

	return summary
}
