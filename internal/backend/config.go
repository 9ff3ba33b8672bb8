package backend

import (
	"fmt"

	"igreja/internal/config"
	"igreja/internal/metrics"
	"igreja/internal/storage"
)

// FromAppConfig converts the application config to backend config. The
// ledger is Google Sheets when a spreadsheet ID is set, memory otherwise.
func FromAppConfig(appConfig *config.Config, m *metrics.Metrics) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	driver, err := storage.ParseDriver(appConfig.DatabaseDriver)
	if err != nil {
		return Config{}, fmt.Errorf("invalid database driver in config: %s", appConfig.DatabaseDriver)
	}

	ledger := MemoryLedger
	if appConfig.GoogleSpreadsheetID != "" {
		ledger = GoogleLedger
	}

	return Config{
		Driver: driver,
		DSN:    appConfig.DSN(),

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		Ledger:              ledger,
		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleSheetName:     appConfig.GoogleSheetName,

		Metrics: m,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	switch c.Driver {
	case storage.DriverSQLite, storage.DriverPostgres:
	default:
		return fmt.Errorf("invalid database driver: %s", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("data source is required for %s driver", c.Driver)
	}

	if c.Ledger != "" && !c.Ledger.IsValid() {
		return fmt.Errorf("invalid ledger type: %s", c.Ledger)
	}
	if c.Ledger == GoogleLedger && c.GoogleSpreadsheetID == "" {
		return fmt.Errorf("Google Spreadsheet ID is required for google ledger")
	}

	return nil
}

// GetLedgerTypes returns all valid ledger types
func GetLedgerTypes() []LedgerType {
	return []LedgerType{GoogleLedger, MemoryLedger}
}
