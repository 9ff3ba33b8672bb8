package sheets

import (
	"context"
	"errors"

	"igreja/internal/core"
)

// ErrRowNotFound is returned when no ledger row carries the requested id.
var ErrRowNotFound = errors.New("ledger row not found")

// Ports for the ledger mirror. Implementations keep one row per financial
// entry, keyed by the entry id in the first column.
type (
	LedgerWriter interface {
		AppendEntry(ctx context.Context, e core.FinancialEntry) (rowRef string, err error)
	}

	LedgerDeleter interface {
		DeleteEntry(ctx context.Context, id int64) error
	}

	LedgerReader interface {
		ListEntries(ctx context.Context) ([]core.FinancialEntry, error)
	}

	Ledger interface {
		LedgerWriter
		LedgerDeleter
		LedgerReader
	}
)

// Header is the first row of a ledger sheet.
var Header = []string{"ID", "Date", "Kind", "Category", "Amount", "Notes"}
