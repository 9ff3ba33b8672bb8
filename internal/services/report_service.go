package services

import (
	"context"
	"fmt"

	"igreja/internal/core"
)

// ReportService computes ledger aggregates on demand. Nothing is cached.
type ReportService struct {
	store RecordStore
}

func NewReportService(store RecordStore) *ReportService {
	return &ReportService{store: store}
}

func (s *ReportService) CashFlow(ctx context.Context) (core.CashFlow, error) {
	return s.store.CashFlow(ctx)
}

// CategoryReport accepts the kind as text and rejects anything that is not
// Income or Expense with a validation error.
func (s *ReportService) CategoryReport(ctx context.Context, kind string) ([]core.CategoryTotal, error) {
	k, err := core.ParseEntryKind(kind)
	if err != nil {
		return nil, &core.ValidationError{Field: "kind", Message: err.Error()}
	}
	return s.store.CategoryReport(ctx, k)
}

func (s *ReportService) Dashboard(ctx context.Context) (core.DashboardSummary, error) {
	return s.store.Dashboard(ctx)
}

// Snapshot bundles the cash flow with both category breakdowns.
type Snapshot struct {
	CashFlow core.CashFlow        `json:"cash_flow"`
	Income   []core.CategoryTotal `json:"income"`
	Expenses []core.CategoryTotal `json:"expenses"`
}

// Snapshot reads everything the admin report prints.
func (s *ReportService) Snapshot(ctx context.Context) (Snapshot, error) {
	cf, err := s.store.CashFlow(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cash flow: %w", err)
	}
	income, err := s.store.CategoryReport(ctx, core.Income)
	if err != nil {
		return Snapshot{}, fmt.Errorf("income report: %w", err)
	}
	expenses, err := s.store.CategoryReport(ctx, core.Expense)
	if err != nil {
		return Snapshot{}, fmt.Errorf("expense report: %w", err)
	}
	return Snapshot{CashFlow: cf, Income: income, Expenses: expenses}, nil
}
