package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/ports"
)

const DefaultCountry = "Kenya"

// LocationError reports a place that could not be geocoded. It always
// matches domain.ErrLocationNotFound; Err holds the underlying cause.
type LocationError struct {
	Place   string
	Country string
	Err     error
}

func (e *LocationError) Error() string {
	if errors.Is(e.Err, domain.ErrLocationNotFound) {
		return fmt.Sprintf("location not found for city: %s, country: %s", e.Place, e.Country)
	}
	return fmt.Sprintf("fetch location %q: %v", e.Place, e.Err)
}

func (e *LocationError) Unwrap() []error {
	return []error{domain.ErrLocationNotFound, e.Err}
}

// NotFound reports whether the geocoder answered without a match, as
// opposed to failing.
func (e *LocationError) NotFound() bool {
	return errors.Is(e.Err, domain.ErrLocationNotFound)
}

// Locator resolves place names within one country and measures the
// distance between them.
type Locator struct {
	geocoder ports.Geocoder
	calc     ports.DistanceCalculator
	country  string
}

func NewLocator(geocoder ports.Geocoder, calc ports.DistanceCalculator, country string) (*Locator, error) {
	if geocoder == nil {
		return nil, errors.New("locator: geocoder is nil")
	}
	if calc == nil {
		return nil, errors.New("locator: distance calculator is nil")
	}

	country = strings.TrimSpace(country)
	if country == "" {
		country = DefaultCountry
	}

	return &Locator{geocoder: geocoder, calc: calc, country: country}, nil
}

// Country returns the country every query is scoped to.
func (l *Locator) Country() string { return l.country }

// Locate geocodes place suffixed with ", <country>". Every failure, whether
// no match or a transport error, is returned as a *LocationError.
func (l *Locator) Locate(ctx context.Context, place string) (domain.Coordinates, error) {
	query := place + ", " + l.country

	c, err := l.geocoder.Geocode(ctx, query)
	if err != nil {
		return domain.Coordinates{}, &LocationError{Place: place, Country: l.country, Err: err}
	}

	return c, nil
}
