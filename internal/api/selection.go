package api

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"launchdash/domain/launch"
	"launchdash/internal/errors"
)

// ParseSelection reads site, low and high query parameters. Missing values
// fall back to the default selection; bounds are not clamped, so a range
// outside the dataset simply matches nothing.
func ParseSelection(q url.Values, d *launch.Dataset) (launch.Selection, error) {
	sel := launch.DefaultSelection(d)

	if site := q.Get("site"); site != "" {
		sel.Site = site
	}

	var err error
	if sel.Payload.Low, err = parseBound(q, "low", sel.Payload.Low); err != nil {
		return sel, err
	}
	if sel.Payload.High, err = parseBound(q, "high", sel.Payload.High); err != nil {
		return sel, err
	}
	return sel, nil
}

func parseBound(q url.Values, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInput(name + " must be a number")
	}
	return v, nil
}
