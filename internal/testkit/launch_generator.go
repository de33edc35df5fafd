package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"launchdash/domain/launch"
)

// SiteProfile shapes the launches generated for one site
type SiteProfile struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	BaseSuccess float64 `json:"base_success"`
}

// LaunchGeneratorConfig configures the synthetic launch generator
type LaunchGeneratorConfig struct {
	LaunchCount  int           `json:"launch_count"`
	Sites        []SiteProfile `json:"sites"`
	MaxPayloadKg float64       `json:"max_payload_kg"`
	Seed         int64         `json:"seed"`
}

// DefaultLaunchConfig mirrors the shape of the public SpaceX launch export:
// four pads, payloads up to 9600 kg, success improving with later boosters
func DefaultLaunchConfig() LaunchGeneratorConfig {
	return LaunchGeneratorConfig{
		LaunchCount: 56,
		Sites: []SiteProfile{
			{Name: "CCAFS LC-40", Weight: 0.46, BaseSuccess: 0.15},
			{Name: "VAFB SLC-4E", Weight: 0.18, BaseSuccess: 0.25},
			{Name: "KSC LC-39A", Weight: 0.23, BaseSuccess: 0.55},
			{Name: "CCAFS SLC-40", Weight: 0.13, BaseSuccess: 0.30},
		},
		MaxPayloadKg: 9600,
		Seed:         42,
	}
}

// booster categories in flight order
var boosterCategories = []string{"v1.0", "v1.1", "FT", "B4", "B5"}

// LaunchGenerator generates reproducible launch records
type LaunchGenerator struct {
	config LaunchGeneratorConfig
	rng    *rand.Rand
}

// NewLaunchGenerator creates a new launch generator
func NewLaunchGenerator(config LaunchGeneratorConfig) *LaunchGenerator {
	return &LaunchGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords returns LaunchCount records in flight order
func (g *LaunchGenerator) GenerateRecords() ([]launch.Record, error) {
	if g.config.LaunchCount <= 0 {
		return nil, fmt.Errorf("launch count must be positive")
	}
	if len(g.config.Sites) == 0 {
		return nil, fmt.Errorf("at least one site profile is required")
	}

	records := make([]launch.Record, g.config.LaunchCount)
	for i := range records {
		progress := float64(i) / float64(g.config.LaunchCount)
		site := g.pickSite()
		category := boosterCategories[int(progress*float64(len(boosterCategories)))]

		p := clamp(site.BaseSuccess+0.6*progress, 0.05, 0.97)
		outcome := launch.OutcomeFailure
		if g.rng.Float64() < p {
			outcome = launch.OutcomeSuccess
		}

		records[i] = launch.Record{
			Site:            site.Name,
			PayloadKg:       g.payload(progress),
			Outcome:         outcome,
			FlightNumber:    i + 1,
			BoosterVersion:  fmt.Sprintf("F9 %s B%04d", category, 1000+i),
			BoosterCategory: category,
		}
	}
	return records, nil
}

// payload grows with flight order; early flights often carried no payload
func (g *LaunchGenerator) payload(progress float64) float64 {
	if progress < 0.1 && g.rng.Float64() < 0.3 {
		return 0
	}
	mean := g.config.MaxPayloadKg * (0.2 + 0.45*progress)
	kg := mean + g.rng.NormFloat64()*g.config.MaxPayloadKg*0.15
	return math.Round(clamp(kg, 0, g.config.MaxPayloadKg))
}

func (g *LaunchGenerator) pickSite() SiteProfile {
	total := 0.0
	for _, s := range g.config.Sites {
		total += s.Weight
	}
	r := g.rng.Float64() * total
	for _, s := range g.config.Sites {
		if r < s.Weight {
			return s
		}
		r -= s.Weight
	}
	return g.config.Sites[len(g.config.Sites)-1]
}

// WriteCSV writes records in the column layout of the public export
func WriteCSV(w io.Writer, records []launch.Record) error {
	cw := csv.NewWriter(w)
	header := []string{"Flight Number", "Launch Site", "class", "Payload Mass (kg)", "Booster Version", "Booster Version Category"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.FlightNumber),
			r.Site,
			strconv.Itoa(r.Outcome.Indicator()),
			strconv.FormatFloat(r.PayloadKg, 'f', -1, 64),
			r.BoosterVersion,
			r.BoosterCategory,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
