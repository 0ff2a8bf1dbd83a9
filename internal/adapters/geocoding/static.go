package geocoding

import (
	"context"
	"fmt"
	"sync"

	"shipping-estimator/internal/adapters/cache"
	"shipping-estimator/internal/domain"
)

// Static is an in-memory geocoder keyed by normalized query. It backs
// tests and offline runs seeded from data/seeds.
type Static struct {
	mu    sync.Mutex
	m     map[string]domain.Coordinates
	calls map[string]int
}

func NewStatic(places map[string]domain.Coordinates) *Static {
	m := make(map[string]domain.Coordinates, len(places))
	for k, v := range places {
		m[cache.NormalizeKey(k)] = v
	}
	return &Static{m: m, calls: map[string]int{}}
}

func (s *Static) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}

	key := cache.NormalizeKey(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[key]++
	c, ok := s.m[key]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("static geocoder: %q: %w", query, domain.ErrLocationNotFound)
	}
	return c, nil
}

// Calls reports how many times query was looked up.
func (s *Static) Calls(query string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[cache.NormalizeKey(query)]
}
