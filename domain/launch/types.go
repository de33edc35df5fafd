package launch

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"launchdash/domain/core"
)

// Outcome is the binary launch outcome indicator
type Outcome int

const (
	OutcomeFailure Outcome = 0
	OutcomeSuccess Outcome = 1
)

// Descriptive labels used for the per-site outcome breakdown
const (
	LabelSuccess = "Success"
	LabelFailure = "Failure"
)

// Label returns the descriptive category for the outcome
func (o Outcome) Label() string {
	if o == OutcomeSuccess {
		return LabelSuccess
	}
	return LabelFailure
}

// Indicator returns the outcome as the 0/1 value stored in the dataset
func (o Outcome) Indicator() int {
	return int(o)
}

// ParseOutcome parses a raw 0/1 outcome cell. Float spellings such as "1.0"
// are accepted because spreadsheet exports commonly write them that way.
func ParseOutcome(raw string) (Outcome, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", core.ErrInvalidOutcome, raw)
	}
	switch v {
	case 0:
		return OutcomeFailure, nil
	case 1:
		return OutcomeSuccess, nil
	default:
		return 0, fmt.Errorf("%w: %q is not 0 or 1", core.ErrInvalidOutcome, raw)
	}
}

// Record is one historical launch
type Record struct {
	Site      string  `json:"launch_site" db:"launch_site"`
	PayloadKg float64 `json:"payload_mass_kg" db:"payload_mass_kg"`
	Outcome   Outcome `json:"class" db:"outcome"`

	// Optional columns carried through from richer exports
	FlightNumber    int    `json:"flight_number,omitempty" db:"flight_number"`
	BoosterVersion  string `json:"booster_version,omitempty" db:"booster_version"`
	BoosterCategory string `json:"booster_version_category,omitempty" db:"booster_version_category"`
}

// Validate checks the record invariants
func (r Record) Validate() error {
	if math.IsNaN(r.PayloadKg) || math.IsInf(r.PayloadKg, 0) || r.PayloadKg < 0 {
		return fmt.Errorf("%w: %v kg for site %q", core.ErrInvalidPayload, r.PayloadKg, r.Site)
	}
	if r.Outcome != OutcomeFailure && r.Outcome != OutcomeSuccess {
		return fmt.Errorf("%w: %d for site %q", core.ErrInvalidOutcome, r.Outcome, r.Site)
	}
	return nil
}
