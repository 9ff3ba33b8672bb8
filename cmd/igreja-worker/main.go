package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"igreja/internal/backend"
	"igreja/internal/cli"
	"igreja/internal/config"
	applog "igreja/internal/log"
	"igreja/internal/metrics"
	"igreja/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()
	cfg := cli.MustLoadConfig()
	logger := cli.SetupLogger(cfg, applog.ComponentWorker)

	logger.InfoContext(context.Background(), "Starting igreja-worker")

	if cfg.AMQPURL == "" {
		logger.ErrorContext(context.Background(), "AMQP_URL is required for the ledger worker")
		os.Exit(1)
	}

	os.Exit(run(cfg, logger))
}

// run returns the process exit code so deferred cleanup completes before exit.
func run(cfg *config.Config, logger *applog.Logger) int {
	m := metrics.New()
	bc, err := backend.FromAppConfig(cfg, m)
	if err != nil {
		logger.ErrorContext(context.Background(), "Invalid backend configuration", "error", err)
		return 1
	}
	factory := backend.NewFactory(logger)
	be, err := factory.CreateBackend(context.Background(), bc)
	if err != nil {
		logger.ErrorContext(context.Background(), "Failed to initialize backend", "error", err)
		return 1
	}
	defer func() {
		if err := be.Cleanup(); err != nil {
			logger.ErrorContext(context.Background(), "Backend cleanup error", "error", err)
		}
	}()
	if be.AMQP == nil {
		logger.ErrorContext(context.Background(), "AMQP broker unavailable, nothing to consume")
		return 1
	}

	ledger, err := factory.CreateLedger(context.Background(), bc)
	if err != nil {
		logger.ErrorContext(context.Background(), "Failed to initialize ledger", "error", err, "ledger", bc.Ledger)
		return 1
	}

	// Worker metrics on PORT so the worker can be scraped like the server.
	metricsSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WarnContext(context.Background(), "Metrics listener stopped", "error", err)
		}
	}()

	ctx, done := cli.GracefulShutdown(logger, 15*time.Second, func(shutdownCtx context.Context) {
		_ = metricsSrv.Shutdown(shutdownCtx)
	})

	sync := worker.NewLedgerSync(be.Store, ledger, cfg.DedupeTTL, m)
	if err := sync.Run(ctx, be.AMQP, time.Minute); err != nil {
		logger.ErrorContext(ctx, "Ledger worker failed", "error", err)
		return 1
	}

	<-done
	logger.InfoContext(context.Background(), "Worker stopped gracefully")
	return 0
}
