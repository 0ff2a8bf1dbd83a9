package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shipping-estimator/internal/api"
	"shipping-estimator/internal/bootstrap"
	"shipping-estimator/internal/config"
	"shipping-estimator/internal/platform/logger"
)

// main is the HTTP composition root. It wires the estimator through
// bootstrap and serves it until SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger level comes from config; fall back to a production logger.
		zap.Must(zap.NewProduction()).Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("close resources", zap.Error(err))
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(app.Estimator, log)

	// Write timeout covers up to two geocoder calls with retries on a cold cache.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
