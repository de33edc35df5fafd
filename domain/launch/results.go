package launch

// Category names the field the outcome aggregation is grouped by
const (
	CategoryBySite    = "Launch Site"
	CategoryByOutcome = "class"
)

// OutcomeCategory is one slice of the proportions chart
type OutcomeCategory struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// OutcomeAggregation drives the proportions chart
type OutcomeAggregation struct {
	Site       string            `json:"site"`
	Title      string            `json:"title"`
	Category   string            `json:"category"`
	Categories []OutcomeCategory `json:"categories"`
}

// AsMap returns the category to count mapping
func (a OutcomeAggregation) AsMap() map[string]int {
	m := make(map[string]int, len(a.Categories))
	for _, c := range a.Categories {
		m[c.Label] = c.Count
	}
	return m
}

// Total sums the counts of all categories
func (a OutcomeAggregation) Total() int {
	total := 0
	for _, c := range a.Categories {
		total += c.Count
	}
	return total
}

// IsEmpty reports whether there is nothing to draw: no categories, or only
// zero counts
func (a OutcomeAggregation) IsEmpty() bool {
	return a.Total() == 0
}

// CorrelationSubset drives the payload vs. outcome scatter chart
type CorrelationSubset struct {
	Site    string       `json:"site"`
	Range   PayloadRange `json:"payload_range"`
	Title   string       `json:"title"`
	Records []Record     `json:"records"`
}

// Len returns the number of matching records
func (s CorrelationSubset) Len() int {
	return len(s.Records)
}

// BySite groups the subset by site label, keeping first-appearance order of
// sites and load order within each group
func (s CorrelationSubset) BySite() ([]string, map[string][]Record) {
	var order []string
	groups := make(map[string][]Record)
	for _, r := range s.Records {
		if _, ok := groups[r.Site]; !ok {
			order = append(order, r.Site)
		}
		groups[r.Site] = append(groups[r.Site], r)
	}
	return order, groups
}
