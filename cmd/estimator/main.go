package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"shipping-estimator/internal/bootstrap"
	"shipping-estimator/internal/cli"
	"shipping-estimator/internal/config"
	"shipping-estimator/internal/platform/logger"
)

// main prompts for two places and a parcel weight and prints the quote.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("close resources", zap.Error(err))
		}
	}()

	return cli.Run(ctx, os.Stdin, os.Stdout, app.Estimator, log)
}
