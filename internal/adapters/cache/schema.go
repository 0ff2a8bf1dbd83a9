package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/ports"
)

// InitSchema creates the geocode cache table. The DDL is valid for both
// SQLite and PostgreSQL.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	if _, err := tx.ExecContext(ctx, createGeocodeCacheQuery); err != nil {
		return fmt.Errorf("init schema: create geocode_cache: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PlaceSeed struct {
	Place string  `json:"place"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// LoadSeeds reads and validates place seeds from a JSON file.
// Returned keys are normalized and ready for PutMany.
func LoadSeeds(jsonPath string) (map[string]domain.Coordinates, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed places: parse json: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		place := NormalizeKey(item.Place)
		if place == "" {
			return nil, fmt.Errorf("seed places: item at index %d: place cannot be empty", i+1)
		}

		if math.Abs(item.Lat) > 90 || math.Abs(item.Lon) > 180 {
			return nil, fmt.Errorf("seed places: item %q: coordinates out of range (%v, %v)", item.Place, item.Lat, item.Lon)
		}

		out[place] = domain.Coordinates{Lat: item.Lat, Lon: item.Lon}
	}

	return out, nil
}

// Seed writes the places from jsonPath into cache.
func Seed(ctx context.Context, c ports.GeocodeCache, jsonPath string) (int, error) {
	seeds, err := LoadSeeds(jsonPath)
	if err != nil {
		return 0, err
	}

	if err := c.PutMany(ctx, seeds); err != nil {
		return 0, fmt.Errorf("seed places: %w", err)
	}

	return len(seeds), nil
}

func dedupe(queries []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}

		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		uniq = append(uniq, q)
	}
	return uniq
}
