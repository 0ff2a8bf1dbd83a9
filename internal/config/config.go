package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	GeocoderNominatim = "nominatim"
	GeocoderORS       = "ors"
	GeocoderStatic    = "static"

	CacheNone     = "none"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Config holds every runtime setting of the estimator binaries.
type Config struct {
	Geocoder          string        `mapstructure:"geocoder"`
	NominatimURL      string        `mapstructure:"nominatim_url"`
	UserAgent         string        `mapstructure:"geocoder_user_agent"`
	ORSAPIKey         string        `mapstructure:"ors_api_key"`
	ORSURL            string        `mapstructure:"ors_url"`
	Country           string        `mapstructure:"geocode_country"`
	CountryCode       string        `mapstructure:"geocode_country_code"`
	GeocoderTimeout   time.Duration `mapstructure:"geocoder_timeout"`
	GeocoderAttempts  int           `mapstructure:"geocoder_max_attempts"`
	DistanceFormula   string        `mapstructure:"distance_formula"`
	RatePerKgKm       float64       `mapstructure:"rate_per_kg_km"`
	Currency          string        `mapstructure:"currency"`
	AverageSpeedKmh   float64       `mapstructure:"average_speed_kmh"`
	ArrivalHoursScale int           `mapstructure:"arrival_hours_factor"`
	GeocodeCache      string        `mapstructure:"geocode_cache"`
	CacheDBPath       string        `mapstructure:"cache_db_path"`
	DatabaseURL       string        `mapstructure:"database_url"`
	RedisURL          string        `mapstructure:"redis_url"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	SeedPath          string        `mapstructure:"seed_path"`
	LogLevel          string        `mapstructure:"log_level"`
	Port              string        `mapstructure:"port"`
}

var defaults = map[string]any{
	"geocoder":              GeocoderNominatim,
	"nominatim_url":         "https://nominatim.openstreetmap.org",
	"geocoder_user_agent":   "DistanceCalculator",
	"ors_api_key":           "",
	"ors_url":               "https://api.openrouteservice.org",
	"geocode_country":       "Kenya",
	"geocode_country_code":  "KE",
	"geocoder_timeout":      "10s",
	"geocoder_max_attempts": 1,
	"distance_formula":      "geodesic",
	"rate_per_kg_km":        1.0,
	"currency":              "Kenyan Shillings",
	"average_speed_kmh":     60.0,
	"arrival_hours_factor":  2,
	"geocode_cache":         CacheNone,
	"cache_db_path":         "data/geocode.db",
	"database_url":          "",
	"redis_url":             "redis://localhost:6379/0",
	"cache_ttl":             "720h",
	"seed_path":             "data/seeds/places.json",
	"log_level":             "warn",
	"port":                  "8080",
}

// Load reads configuration from a .env file (if present), the environment
// and, when CONFIG_FILE is set, a YAML file. Environment wins over the file.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.Geocoder = strings.ToLower(strings.TrimSpace(cfg.Geocoder))
	cfg.GeocodeCache = strings.ToLower(strings.TrimSpace(cfg.GeocodeCache))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Geocoder {
	case GeocoderNominatim, GeocoderStatic:
	case GeocoderORS:
		if strings.TrimSpace(c.ORSAPIKey) == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required when GEOCODER=ors"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODER must be one of nominatim, ors, static; got %q", c.Geocoder))
	}

	switch c.GeocodeCache {
	case "", CacheNone, CacheSQLite, CacheRedis:
	case CachePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when GEOCODE_CACHE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODE_CACHE must be one of none, sqlite, postgres, redis; got %q", c.GeocodeCache))
	}

	if c.GeocoderAttempts < 1 {
		errs = append(errs, fmt.Errorf("GEOCODER_MAX_ATTEMPTS must be at least 1; got %d", c.GeocoderAttempts))
	}
	if c.AverageSpeedKmh <= 0 {
		errs = append(errs, fmt.Errorf("AVERAGE_SPEED_KMH must be positive; got %v", c.AverageSpeedKmh))
	}
	if c.RatePerKgKm <= 0 {
		errs = append(errs, fmt.Errorf("RATE_PER_KG_KM must be positive; got %v", c.RatePerKgKm))
	}
	if c.ArrivalHoursScale < 0 {
		errs = append(errs, fmt.Errorf("ARRIVAL_HOURS_FACTOR must not be negative; got %d", c.ArrivalHoursScale))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
