package ports

import (
	"context"
	"shipping-estimator/internal/domain"
)

// Contract for resolving a free-text place query to coordinates.
type Geocoder interface {
	// Return the best match for query, or an error matching
	// domain.ErrLocationNotFound when the service has no result.
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}
