package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/platform/obs"
)

const redisKeyPrefix = "geocode:"

type redisEntry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RedisGeocodeCache stores query -> coordinate mappings as JSON strings
// with an optional expiry. A zero TTL keeps entries forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// Fetch cached coordinates for the given queries.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := dedupe(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, 0, len(uniq))
	for _, q := range uniq {
		keys = append(keys, redisKeyPrefix+q)
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var e redisEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = domain.Coordinates{Lat: e.Lat, Lon: e.Lon}
	}

	return out, nil
}

// Store query -> coordinate mappings in the cache.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.TxPipeline()
	for key, c := range results {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}

		b, err := json.Marshal(redisEntry{Lat: c.Lat, Lon: c.Lon})
		if err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
		pipe.Set(ctx, redisKeyPrefix+key, b, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis exec: %w", err)
	}

	return nil
}
