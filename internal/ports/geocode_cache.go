package ports

import (
	"context"
	"shipping-estimator/internal/domain"
)

// Port: a persistent store of query -> coordinate mappings.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	// Fetch cached coordinates for the given queries. Misses are omitted.
	GetMany(ctx context.Context, queries []string) (map[string]domain.Coordinates, error)
	// Store query -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
