package storage

import (
	"context"
	"fmt"

	"igreja/internal/core"
)

// CashFlow sums income and expense over the whole ledger. Sums are exact
// integer cents, so the balance equals income minus expense.
func (r *Repository) CashFlow(ctx context.Context) (core.CashFlow, error) {
	income, expense, err := r.queries.CashFlowTotals(ctx, string(core.Income), string(core.Expense))
	if err != nil {
		return core.CashFlow{}, fmt.Errorf("cash flow totals: %w", err)
	}
	return core.NewCashFlow(core.Money{Cents: income}, core.Money{Cents: expense}), nil
}

// CategoryReport groups entries of one kind by category, largest total
// first and category name ascending on ties.
func (r *Repository) CategoryReport(ctx context.Context, kind core.EntryKind) ([]core.CategoryTotal, error) {
	if !kind.Valid() {
		return nil, &core.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown entry kind %q", kind)}
	}
	rows, err := r.queries.CategoryTotals(ctx, string(kind))
	if err != nil {
		return nil, fmt.Errorf("category totals for %s: %w", kind, err)
	}
	out := make([]core.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.CategoryTotal{
			Category: row.Category,
			Total:    core.Money{Cents: row.TotalCents},
		})
	}
	return out, nil
}

// Dashboard reads the record counts and the cash flow in a single query.
func (r *Repository) Dashboard(ctx context.Context) (core.DashboardSummary, error) {
	row, err := r.queries.Dashboard(ctx, string(core.Income), string(core.Expense))
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("dashboard: %w", err)
	}
	return core.DashboardSummary{
		Members:    row.Members,
		Pastors:    row.Pastors,
		Churches:   row.Churches,
		Activities: row.Activities,
		CashFlow:   core.NewCashFlow(core.Money{Cents: row.IncomeCents}, core.Money{Cents: row.ExpenseCents}),
	}, nil
}
