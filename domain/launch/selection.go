package launch

// AllSites is the selector value meaning every site
const AllSites = "ALL"

// AllSitesLabel is the dropdown label for AllSites
const AllSitesLabel = "All Sites"

// PayloadRange is a closed payload interval in kilograms
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether kg lies in [Low, High]
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}

// Selection is the current state of the dashboard controls
type Selection struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// IsAllSites reports whether the selection aggregates every site
func (s Selection) IsAllSites() bool {
	return s.Site == AllSites
}

// DefaultSelection is the initial control state: all sites, full payload range
func DefaultSelection(d *Dataset) Selection {
	return Selection{Site: AllSites, Payload: d.PayloadBounds()}
}

// SiteOption is one entry of the site dropdown
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions builds the dropdown entries. When explicit is non-empty it is
// used verbatim, otherwise the dataset's sites are listed. Labels that look
// alike (for example "VAFB SLC-4E" and "Vandenberg SLC-4E") stay separate.
func SiteOptions(d *Dataset, explicit []string) []SiteOption {
	sites := explicit
	if len(sites) == 0 {
		sites = d.Sites()
	}
	options := make([]SiteOption, 0, len(sites)+1)
	options = append(options, SiteOption{Label: AllSitesLabel, Value: AllSites})
	for _, site := range sites {
		options = append(options, SiteOption{Label: site, Value: site})
	}
	return options
}
