package backend

import (
	"context"

	"igreja/internal/amqp"
	"igreja/internal/metrics"
	"igreja/internal/services"
	"igreja/internal/sheets"
	"igreja/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds everything a process needs to serve records.
type BackendResult struct {
	Store    *storage.Repository
	Registry *services.RegistryService
	Reports  *services.ReportService
	// AMQP is nil when change events are disabled.
	AMQP    *amqp.Client
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend opens the store and the optional AMQP client and
	// builds the services on top of them.
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
	// CreateLedger returns the sheet the worker mirrors entries into.
	CreateLedger(ctx context.Context, config Config) (sheets.Ledger, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Database
	Driver storage.Driver
	DSN    string

	// AMQP, disabled when URL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Ledger
	Ledger              LedgerType
	GoogleSpreadsheetID string
	GoogleSheetName     string

	Metrics *metrics.Metrics
}

// LedgerType represents where financial entries are mirrored.
type LedgerType string

const (
	GoogleLedger LedgerType = "google"
	MemoryLedger LedgerType = "memory"
)

// String implements fmt.Stringer
func (lt LedgerType) String() string {
	return string(lt)
}

// IsValid returns true if the ledger type is valid
func (lt LedgerType) IsValid() bool {
	switch lt {
	case GoogleLedger, MemoryLedger:
		return true
	default:
		return false
	}
}
