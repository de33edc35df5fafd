package launch

import (
	"fmt"
	"strconv"
	"strings"

	"launchdash/domain/core"
)

// Dataset is the immutable, in-memory table of launch records loaded at startup.
// It is safe to share between goroutines because nothing mutates it after
// construction.
type Dataset struct {
	id       core.ID
	source   string
	loadedAt core.Timestamp
	hash     core.Hash
	records  []Record
	sites    []string
	minKg    float64
	maxKg    float64
}

// NewDataset validates and copies records into a new Dataset
func NewDataset(source string, records []Record) (*Dataset, error) {
	d := &Dataset{
		id:       core.NewID(),
		source:   source,
		loadedAt: core.Now(),
		records:  make([]Record, len(records)),
	}
	copy(d.records, records)

	var canonical strings.Builder
	seen := make(map[string]bool)
	for i, r := range d.records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if !seen[r.Site] {
			seen[r.Site] = true
			d.sites = append(d.sites, r.Site)
		}
		if i == 0 || r.PayloadKg < d.minKg {
			d.minKg = r.PayloadKg
		}
		if i == 0 || r.PayloadKg > d.maxKg {
			d.maxKg = r.PayloadKg
		}
		writeCanonical(&canonical, r)
	}
	d.hash = core.NewHash([]byte(canonical.String()))

	return d, nil
}

// writeCanonical appends the fields the dashboard reads, one record per line
func writeCanonical(b *strings.Builder, r Record) {
	b.WriteString(r.Site)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatFloat(r.PayloadKg, 'g', -1, 64))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.Outcome.Indicator()))
	b.WriteByte('\n')
}

// ID returns the identifier assigned when the dataset was loaded
func (d *Dataset) ID() core.ID { return d.id }

// Fingerprint hashes site, payload and outcome of every record in load
// order. Two loads of the same data share a fingerprint but not an ID.
func (d *Dataset) Fingerprint() core.Hash { return d.hash }

// Source describes where the records were loaded from
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns the load time
func (d *Dataset) LoadedAt() core.Timestamp { return d.loadedAt }

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the records in load order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the table
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Sites returns the distinct site labels in order of first appearance
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// PayloadBounds returns the full payload range of the dataset.
// An empty dataset reports the zero range.
func (d *Dataset) PayloadBounds() PayloadRange {
	return PayloadRange{Low: d.minKg, High: d.maxKg}
}
