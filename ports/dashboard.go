package ports

import (
	"launchdash/domain/launch"
)

// DashboardTransformer turns the current control selection into chart-ready
// data. Both methods are pure: they read the dataset and the selection and
// never retain either.
type DashboardTransformer interface {
	// ComputeOutcomeAggregation feeds the proportions chart. Only sel.Site is read.
	ComputeOutcomeAggregation(d *launch.Dataset, sel launch.Selection) launch.OutcomeAggregation
	// ComputeCorrelationSubset feeds the payload vs. outcome scatter chart
	ComputeCorrelationSubset(d *launch.Dataset, sel launch.Selection) launch.CorrelationSubset
}
