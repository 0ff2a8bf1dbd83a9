package geocoding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shipping-estimator/internal/adapters/cache"
	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/ports"
)

// Cached wraps a Geocoder with a persistent GeocodeCache.
//
// Cache failures are logged and never fail a lookup: a broken cache
// degrades to a plain pass-through geocoder.
type Cached struct {
	inner ports.Geocoder
	cache ports.GeocodeCache
	log   *zap.Logger
}

func NewCached(inner ports.Geocoder, c ports.GeocodeCache, log *zap.Logger) (*Cached, error) {
	if inner == nil {
		return nil, errors.New("cached geocoder: inner geocoder is nil")
	}
	if c == nil {
		return nil, errors.New("cached geocoder: cache is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Cached{inner: inner, cache: c, log: log}, nil
}

func (g *Cached) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	key := cache.NormalizeKey(query)
	if key == "" {
		return domain.Coordinates{}, errors.New("cached geocoder: query must be non-empty")
	}

	hits, err := g.cache.GetMany(ctx, []string{key})
	if err != nil {
		g.log.Warn("geocode cache read failed", zap.String("query", key), zap.Error(err))
	} else if c, ok := hits[key]; ok {
		g.log.Debug("geocode cache hit", zap.String("query", key))
		return c, nil
	}

	c, err := g.inner.Geocode(ctx, query)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("cached geocoder: %w", err)
	}

	if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{key: c}); err != nil {
		g.log.Warn("geocode cache write failed", zap.String("query", key), zap.Error(err))
	}

	return c, nil
}
