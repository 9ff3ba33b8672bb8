package memory

import (
	"context"
	"fmt"
	"sync"

	"igreja/internal/core"
	ports "igreja/internal/sheets"
)

var _ ports.Ledger = (*Store)(nil)

// Store is an in-process ledger used when no spreadsheet is configured.
type Store struct {
	mu    sync.Mutex
	rows  []core.FinancialEntry
	added int
}

func New() *Store {
	return &Store{}
}

// AppendEntry stores the entry and returns a synthetic row reference.
// Appending an id that is already present adds a second row, as a sheet would.
func (s *Store) AppendEntry(_ context.Context, e core.FinancialEntry) (string, error) {
	if e.ID <= 0 {
		return "", fmt.Errorf("append entry: invalid id %d", e.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, e)
	s.added++
	return fmt.Sprintf("mem:%d", s.added), nil
}

// DeleteEntry removes the first row with the given id.
func (s *Store) DeleteEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.rows {
		if e.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %d: %w", id, ports.ErrRowNotFound)
}

// ListEntries returns a copy of the rows in sheet order.
func (s *Store) ListEntries(_ context.Context) ([]core.FinancialEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.FinancialEntry(nil), s.rows...), nil
}
