package distance

import (
	"fmt"
	"strings"

	"shipping-estimator/internal/ports"
)

const (
	FormulaGeodesic  = "geodesic"
	FormulaHaversine = "haversine"
)

// New returns the calculator for the named formula.
func New(formula string) (ports.DistanceCalculator, error) {
	switch strings.ToLower(strings.TrimSpace(formula)) {
	case "", FormulaGeodesic:
		return NewGeodesic(), nil
	case FormulaHaversine:
		return NewHaversine(), nil
	default:
		return nil, fmt.Errorf("distance: unknown formula %q", formula)
	}
}
