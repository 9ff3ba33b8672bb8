package memory

import (
	"context"
	"errors"
	"testing"

	"igreja/internal/core"
	ports "igreja/internal/sheets"
)

func TestMemoryStoreAppendListDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.AppendEntry(ctx, core.FinancialEntry{ID: 1, Kind: core.Income, Category: "Tithes", Amount: core.Money{Cents: 100056}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("unexpected ref: %s", ref)
	}
	if _, err := s.AppendEntry(ctx, core.FinancialEntry{ID: 2, Kind: core.Expense}); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, _ := s.ListEntries(ctx)
	if len(rows) != 2 || rows[0].ID != 1 || rows[1].ID != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	if err := s.DeleteEntry(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ = s.ListEntries(ctx)
	if len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("unexpected rows after delete: %+v", rows)
	}

	err = s.DeleteEntry(ctx, 1)
	if !errors.Is(err, ports.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestMemoryStoreRejectsInvalidID(t *testing.T) {
	if _, err := New().AppendEntry(context.Background(), core.FinancialEntry{}); err == nil {
		t.Fatal("expected error for zero id")
	}
}

func TestListEntriesReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.AppendEntry(ctx, core.FinancialEntry{ID: 1, Category: "A"})

	rows, _ := s.ListEntries(ctx)
	rows[0].Category = "changed"

	again, _ := s.ListEntries(ctx)
	if again[0].Category != "A" {
		t.Fatal("ListEntries must not expose internal storage")
	}
}
