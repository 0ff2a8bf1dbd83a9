package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shipping-estimator/internal/adapters/cache"
	"shipping-estimator/internal/adapters/distance"
	"shipping-estimator/internal/adapters/geocoding"
	"shipping-estimator/internal/config"
	"shipping-estimator/internal/platform/db"
	"shipping-estimator/internal/ports"
	"shipping-estimator/internal/services"
)

// App is the wired estimator plus the resources that back it.
type App struct {
	Estimator *services.Estimator
	Log       *zap.Logger

	closers []func() error
}

// Close releases caches and database handles in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// New is the composition root shared by the CLI and the HTTP server. It
// wires concrete adapters (geocoder, cache, distance formula) behind ports.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{Log: log}

	geocoder, err := newGeocoder(cfg)
	if err != nil {
		return nil, err
	}

	gc, err := app.newCache(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if gc != nil {
		geocoder, err = geocoding.NewCached(geocoder, gc, log)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
	}

	calc, err := distance.New(cfg.DistanceFormula)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	locator, err := services.NewLocator(geocoder, calc, cfg.Country)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	est, err := services.NewEstimator(locator, services.EstimatorConfig{
		Pricing:     services.Pricing{RatePerKgKm: cfg.RatePerKgKm, Currency: cfg.Currency},
		SpeedKmh:    cfg.AverageSpeedKmh,
		HoursFactor: cfg.ArrivalHoursScale,
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.Estimator = est

	log.Debug("estimator ready",
		zap.String("geocoder", cfg.Geocoder),
		zap.String("cache", cfg.GeocodeCache),
		zap.String("formula", cfg.DistanceFormula),
		zap.String("country", cfg.Country),
	)

	return app, nil
}

func newGeocoder(cfg *config.Config) (ports.Geocoder, error) {
	opts := geocoding.Options{
		Timeout:     cfg.GeocoderTimeout,
		MaxAttempts: cfg.GeocoderAttempts,
	}

	switch cfg.Geocoder {
	case config.GeocoderNominatim, "":
		g, err := geocoding.NewNominatim(cfg.NominatimURL, cfg.UserAgent, opts)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return g, nil
	case config.GeocoderORS:
		g, err := geocoding.NewORS(cfg.ORSAPIKey, cfg.ORSURL, cfg.CountryCode, opts)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return g, nil
	case config.GeocoderStatic:
		places, err := cache.LoadSeeds(cfg.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: static geocoder: %w", err)
		}
		return geocoding.NewStatic(places), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown geocoder %q", cfg.Geocoder)
	}
}

// newCache returns nil when caching is disabled.
func (a *App) newCache(ctx context.Context, cfg *config.Config) (ports.GeocodeCache, error) {
	switch cfg.GeocodeCache {
	case config.CacheNone, "":
		return nil, nil
	case config.CacheSQLite:
		conn, err := db.OpenSQLite(cfg.CacheDBPath)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return a.sqlCache(ctx, conn, cache.NewSqliteGeocodeCache(conn))
	case config.CachePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return a.sqlCache(ctx, conn, cache.NewSQLGeocodeCache(conn))
	case config.CacheRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		a.closers = append(a.closers, client.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("bootstrap: ping redis: %w", err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.CacheTTL), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown geocode cache %q", cfg.GeocodeCache)
	}
}

func (a *App) sqlCache(ctx context.Context, conn *sql.DB, c ports.GeocodeCache) (ports.GeocodeCache, error) {
	a.closers = append(a.closers, conn.Close)
	if err := cache.InitSchema(ctx, conn); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return c, nil
}
