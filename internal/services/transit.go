package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"shipping-estimator/internal/domain"
)

// AverageSpeedKmh is the assumed door-to-door speed.
const AverageSpeedKmh = 60.0

// ExpectedTime returns the travel time for distance km at 60 km/h.
func ExpectedTime(distance float64) (domain.TransitTime, error) {
	return TransitTimeAt(distance, AverageSpeedKmh)
}

// TransitTimeAt splits distance/speed into whole hours and the minute
// remainder rounded half-to-even. The remainder can round up to 60; it is
// not carried into Hours.
func TransitTimeAt(distance, speedKmh float64) (domain.TransitTime, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return domain.TransitTime{}, fmt.Errorf("expected time for %v: %w", distance, domain.ErrInvalidDistance)
	}
	if math.IsNaN(speedKmh) || math.IsInf(speedKmh, 0) || speedKmh <= 0 {
		return domain.TransitTime{}, fmt.Errorf("expected time: speed %v km/h must be positive", speedKmh)
	}

	total := distance / speedKmh * 60
	hours := math.Floor(total / 60)
	minutes := math.Mod(total, 60)

	return domain.TransitTime{
		Hours:   int(hours),
		Minutes: int(math.RoundToEven(minutes)),
	}, nil
}

// ParseDistance converts textual input to a distance accepted by
// ExpectedTime. Non-numeric input fails with domain.ErrInvalidDistance.
func ParseDistance(raw string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("parse distance %q: %w", raw, domain.ErrInvalidDistance)
	}
	return d, nil
}
