package backend

import (
	"context"
	"fmt"

	"igreja/internal/amqp"
	applog "igreja/internal/log"
	"igreja/internal/services"
	"igreja/internal/sheets"
	gsheet "igreja/internal/sheets/google"
	"igreja/internal/sheets/memory"
	"igreja/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend. An unreachable broker is
// logged and the backend continues without change events.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	repo, err := storage.NewRepository(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s repository: %w", config.Driver, err)
	}

	var (
		amqpClient *amqp.Client
		publisher  services.Publisher
	)
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change events", "error", err)
			amqpClient = nil
		} else {
			publisher = amqpClient
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	registry := services.NewRegistryService(repo, publisher, config.Metrics)
	reports := services.NewReportService(repo)

	f.logger.InfoContext(ctx, "Initialized backend",
		"driver", config.Driver,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Store:    repo,
		Registry: registry,
		Reports:  reports,
		AMQP:     amqpClient,
		Cleanup:  registry.Close,
	}, nil
}

// CreateLedger implements Factory.CreateLedger
func (f *DefaultFactory) CreateLedger(ctx context.Context, config Config) (sheets.Ledger, error) {
	switch config.Ledger {
	case GoogleLedger:
		cli, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID: config.GoogleSpreadsheetID,
			SheetName:     config.GoogleSheetName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets ledger: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized Google Sheets ledger", "sheet", config.GoogleSheetName)
		return cli, nil
	case MemoryLedger, "":
		f.logger.InfoContext(ctx, "Initialized in-memory ledger")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger type: %s", config.Ledger)
	}
}
