package app

import (
	"fmt"

	"launchdash/domain/launch"
	"launchdash/ports"
)

// DashboardService computes the data behind the two dashboard charts.
// It holds no state, so one instance serves every request.
type DashboardService struct{}

var _ ports.DashboardTransformer = (*DashboardService)(nil)

// NewDashboardService creates a dashboard service
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// ComputeOutcomeAggregation implements ports.DashboardTransformer
func (s *DashboardService) ComputeOutcomeAggregation(d *launch.Dataset, sel launch.Selection) launch.OutcomeAggregation {
	return AggregateOutcomes(d, sel.Site)
}

// ComputeCorrelationSubset implements ports.DashboardTransformer
func (s *DashboardService) ComputeCorrelationSubset(d *launch.Dataset, sel launch.Selection) launch.CorrelationSubset {
	return FilterCorrelation(d, sel.Site, sel.Payload)
}

// AggregateOutcomes summarizes launch outcomes for the proportions chart.
//
// For AllSites every site becomes one category whose value is the sum of its
// 0/1 outcome indicators, i.e. its number of successful launches. For a single
// site the matching records are split into "Success" and "Failure" counts.
// An unknown site yields an aggregation with no categories.
func AggregateOutcomes(d *launch.Dataset, site string) launch.OutcomeAggregation {
	if site == launch.AllSites {
		return aggregateBySite(d)
	}
	return aggregateByOutcome(d, site)
}

func aggregateBySite(d *launch.Dataset) launch.OutcomeAggregation {
	sums := make(map[string]int)
	d.Each(func(r launch.Record) {
		sums[r.Site] += r.Outcome.Indicator()
	})

	sites := d.Sites()
	categories := make([]launch.OutcomeCategory, 0, len(sites))
	for _, site := range sites {
		categories = append(categories, launch.OutcomeCategory{Label: site, Count: sums[site]})
	}

	return launch.OutcomeAggregation{
		Site:       launch.AllSites,
		Title:      "Total Success Launches by Site",
		Category:   launch.CategoryBySite,
		Categories: categories,
	}
}

func aggregateByOutcome(d *launch.Dataset, site string) launch.OutcomeAggregation {
	var successes, failures int
	d.Each(func(r launch.Record) {
		if r.Site != site {
			return
		}
		if r.Outcome == launch.OutcomeSuccess {
			successes++
		} else {
			failures++
		}
	})

	// Largest count first; Success wins a tie.
	success := launch.OutcomeCategory{Label: launch.LabelSuccess, Count: successes}
	failure := launch.OutcomeCategory{Label: launch.LabelFailure, Count: failures}
	ordered := []launch.OutcomeCategory{success, failure}
	if failures > successes {
		ordered = []launch.OutcomeCategory{failure, success}
	}

	categories := make([]launch.OutcomeCategory, 0, 2)
	for _, c := range ordered {
		if c.Count > 0 {
			categories = append(categories, c)
		}
	}

	return launch.OutcomeAggregation{
		Site:       site,
		Title:      fmt.Sprintf("Total Success vs. Failure Launches for site %s", site),
		Category:   launch.CategoryByOutcome,
		Categories: categories,
	}
}

// FilterCorrelation selects the records for the payload vs. outcome scatter
// chart: payload within the closed range, and site equal to the selection
// unless it is AllSites. Dataset order is preserved.
func FilterCorrelation(d *launch.Dataset, site string, payload launch.PayloadRange) launch.CorrelationSubset {
	records := make([]launch.Record, 0)
	d.Each(func(r launch.Record) {
		if !payload.Contains(r.PayloadKg) {
			return
		}
		if site != launch.AllSites && r.Site != site {
			return
		}
		records = append(records, r)
	})

	return launch.CorrelationSubset{
		Site:    site,
		Range:   payload,
		Title:   "Correlation between Payload and Success for " + siteTitle(site),
		Records: records,
	}
}

func siteTitle(site string) string {
	if site == launch.AllSites {
		return "all sites"
	}
	return site
}
