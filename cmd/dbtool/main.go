package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shipping-estimator/internal/adapters/cache"
	"shipping-estimator/internal/config"
	"shipping-estimator/internal/platform/db"
	"shipping-estimator/internal/platform/logger"
)

// main prepares the PostgreSQL geocode cache: schema first, then seeds.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("load config", zap.Error(err))
	}

	// dbtool reports progress regardless of LOG_LEVEL.
	log, err := logger.New("info")
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), log, conn, cfg.SeedPath); err != nil {
		log.Fatal("dbtool", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, log *zap.Logger, conn *sql.DB, seedPath string) error {
	log.Info("initializing database schema")
	if err := cache.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("schema ready")

	log.Info("seeding geocode cache", zap.String("path", seedPath))
	n, err := cache.Seed(ctx, cache.NewSQLGeocodeCache(conn), seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("seeding complete", zap.Int("places", n))

	return nil
}
