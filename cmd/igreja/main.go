package main

import (
	"context"
	"os"
	"time"

	"igreja/internal/backend"
	"igreja/internal/cli"
	apphttp "igreja/internal/http"
	applog "igreja/internal/log"
	"igreja/internal/metrics"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()
	cfg := cli.MustLoadConfig()
	logger := cli.SetupLogger(cfg, applog.ComponentApp)
	ctx := context.Background()

	m := metrics.New()
	bc, err := backend.FromAppConfig(cfg, m)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	be, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize backend", "error", err, "driver", bc.Driver)
		os.Exit(1)
	}

	srv := apphttp.NewServer(cfg.Addr(), be.Registry, be.Reports, apphttp.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Metrics:            m,
		Logger:             logger,
	})

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(shutdownCtx, "Server shutdown error", "error", err)
		}
		if err := be.Cleanup(); err != nil {
			logger.ErrorContext(shutdownCtx, "Backend cleanup error", "error", err)
		}
	})

	logger.InfoContext(ctx, "Starting igreja server",
		"port", cfg.Port,
		"driver", bc.Driver,
		"amqp_enabled", be.AMQP != nil)
	if err := srv.ListenAndServe(); err != nil {
		logger.ErrorContext(ctx, "Server error", "error", err, "port", cfg.Port)
		_ = be.Cleanup()
		os.Exit(1)
	}

	<-done
	logger.InfoContext(ctx, "Server stopped gracefully")
}
