package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/platform/obs"
)

// dialect captures the two places where SQLite and PostgreSQL disagree:
// placeholder syntax and matching a key list.
type dialect struct {
	name string
	bind func(i int) string
	in   func(keys []string) (string, []any)
}

var postgres = dialect{
	name: "postgres",
	bind: func(i int) string { return "$" + strconv.Itoa(i) },
	in: func(keys []string) (string, []any) {
		return "query = ANY($1::text[])", []any{keys}
	},
}

// SQLite cannot bind a slice, so the IN list gets one placeholder per key.
var sqlite = dialect{
	name: "sqlite",
	bind: func(int) string { return "?" },
	in: func(keys []string) (string, []any) {
		args := make([]any, len(keys))
		for i, k := range keys {
			args[i] = k
		}
		return "query IN (" + strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",") + ")", args
	},
}

// SQLGeocodeCache maps normalized place queries to coordinates in the
// geocode_cache table created by InitSchema.
type SQLGeocodeCache struct {
	DB *sql.DB

	dialect dialect
}

// NewSQLGeocodeCache returns a cache for a PostgreSQL database.
func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, dialect: postgres}
}

// NewSqliteGeocodeCache returns a cache for a SQLite database.
func NewSqliteGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, dialect: sqlite}
}

// GetMany returns the cached coordinates among queries. Misses are absent
// from the result.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode."+s.dialect.name+".GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := dedupe(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	where, args := s.dialect.in(uniq)
	rows, err := s.DB.QueryContext(ctx, "SELECT query, lat, lon FROM geocode_cache WHERE "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var key string
		var c domain.Coordinates
		if err := rows.Scan(&key, &c.Lat, &c.Lon); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[key] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// PutMany upserts results in a single statement, so either every entry is
// written or none is.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode."+s.dialect.name+".PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	keys := make([]string, 0, len(results))
	for k := range results {
		if strings.TrimSpace(k) == "" {
			return errors.New("insert geocode cache: empty query key")
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString("INSERT INTO geocode_cache (query, lat, lon) VALUES ")
	args := make([]any, 0, 3*len(keys))
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&b, "(%s, %s, %s)", s.dialect.bind(n+1), s.dialect.bind(n+2), s.dialect.bind(n+3))
		args = append(args, k, results[k].Lat, results[k].Lon)
	}
	b.WriteString(" ON CONFLICT (query) DO UPDATE SET lat = excluded.lat, lon = excluded.lon")

	if _, err := s.DB.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("insert geocode cache (%d entries): %w", len(keys), err)
	}

	return nil
}
