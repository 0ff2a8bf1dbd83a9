package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/ports"
)

// CalculateDistance returns the distance in kilometers between a and b.
// A missing coordinate or a calculator failure yields an error matching
// domain.ErrDistanceUnavailable.
func CalculateDistance(calc ports.DistanceCalculator, a, b *domain.Coordinates) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: both locations are required for distance calculation", domain.ErrDistanceUnavailable)
	}

	km, err := calc.DistanceKm(*a, *b)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %w", domain.ErrDistanceUnavailable, domain.ErrDistanceCalculation, err)
	}

	return km, nil
}

// Distance geocodes both places and measures the geodesic distance between
// them. Both places are looked up even when the first fails so that every
// unresolved place is reported.
//
// Every failure matches domain.ErrDistanceUnavailable; the wrapped cause is
// one of domain.ErrMissingPlace, *LocationError or
// domain.ErrDistanceCalculation.
func (l *Locator) Distance(ctx context.Context, origin, destination string) (domain.Leg, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" || destination == "" {
		return domain.Leg{}, fmt.Errorf("%w: %w", domain.ErrDistanceUnavailable, domain.ErrMissingPlace)
	}

	from, errFrom := l.Locate(ctx, origin)
	to, errTo := l.Locate(ctx, destination)
	if errFrom != nil || errTo != nil {
		return domain.Leg{}, fmt.Errorf("%w: %w", domain.ErrDistanceUnavailable, errors.Join(errFrom, errTo))
	}

	km, err := CalculateDistance(l.calc, &from, &to)
	if err != nil {
		return domain.Leg{}, err
	}

	return domain.Leg{
		Origin:      origin,
		Destination: destination,
		From:        from,
		To:          to,
		DistanceKm:  km,
	}, nil
}

// LocationErrors collects every *LocationError in err's tree.
func LocationErrors(err error) []*LocationError {
	var out []*LocationError

	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if le, ok := e.(*LocationError); ok {
			out = append(out, le)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		}
	}
	walk(err)

	return out
}
