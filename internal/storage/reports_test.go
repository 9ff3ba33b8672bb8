package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igreja/internal/core"
)

func addEntry(t *testing.T, repo *Repository, kind, category string, amount any) {
	t.Helper()
	_, err := repo.CreateFinancialEntry(context.Background(), core.NewFinancialEntryInput(core.Fields{
		"kind": kind, "category": category, "amount": amount,
	}))
	require.NoError(t, err)
}

func TestCashFlowEmptyLedger(t *testing.T) {
	repo := newTestRepository(t)

	cf, err := repo.CashFlow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.CashFlow{}, cf)
}

func TestCashFlowRounding(t *testing.T) {
	repo := newTestRepository(t)
	addEntry(t, repo, "Income", "Tithes", 1000.555)
	addEntry(t, repo, "Expense", "Energy", 300.111)

	cf, err := repo.CashFlow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000.56", cf.Income.String())
	assert.Equal(t, "300.11", cf.Expense.String())
	assert.Equal(t, "700.45", cf.Balance.String())
	assert.Equal(t, cf.Income.Cents-cf.Expense.Cents, cf.Balance.Cents)
}

func TestReportsSurviveOversizedAmounts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	addEntry(t, repo, "Income", "Tithes", "90000000000000000")
	addEntry(t, repo, "Income", "Tithes", "90000000000000000")
	addEntry(t, repo, "Income", "Offerings", "10000000000000")
	addEntry(t, repo, "Expense", "Energy", "10000000000000")

	cf, err := repo.CashFlow(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10000000000000.00", cf.Income.String())
	assert.Equal(t, "10000000000000.00", cf.Expense.String())
	assert.Zero(t, cf.Balance.Cents)

	dash, err := repo.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, cf, dash.CashFlow)
}

func TestCashFlowBalanceIsExact(t *testing.T) {
	repo := newTestRepository(t)
	for i := 0; i < 10; i++ {
		addEntry(t, repo, "Income", "Offerings", "0.1")
	}
	addEntry(t, repo, "Expense", "Water", "0.3")
	addEntry(t, repo, "Expense", "Water", "not a number")

	cf, err := repo.CashFlow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), cf.Income.Cents)
	assert.Equal(t, int64(30), cf.Expense.Cents)
	assert.Equal(t, int64(70), cf.Balance.Cents)
}

func TestCategoryReportOrdering(t *testing.T) {
	repo := newTestRepository(t)
	addEntry(t, repo, "Expense", "B", "300")
	addEntry(t, repo, "Expense", "C", "100")
	addEntry(t, repo, "Expense", "A", "100")
	addEntry(t, repo, "Expense", "A", "200")
	addEntry(t, repo, "Income", "Z", "5000")

	got, err := repo.CategoryReport(context.Background(), core.Expense)
	require.NoError(t, err)
	assert.Equal(t, []core.CategoryTotal{
		{Category: "A", Total: core.Money{Cents: 30000}},
		{Category: "B", Total: core.Money{Cents: 30000}},
		{Category: "C", Total: core.Money{Cents: 10000}},
	}, got)
}

func TestCategoryReportDefaultsAndEmpty(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.CategoryReport(context.Background(), core.Income)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = repo.CreateFinancialEntry(context.Background(), core.NewFinancialEntryInput(core.Fields{"amount": "12.345"}))
	require.NoError(t, err)

	got, err = repo.CategoryReport(context.Background(), core.Income)
	require.NoError(t, err)
	assert.Equal(t, []core.CategoryTotal{{Category: "Other", Total: core.Money{Cents: 1235}}}, got)
}

func TestCategoryReportRejectsUnknownKind(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CategoryReport(context.Background(), core.EntryKind("Receita"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))
}

func TestDashboard(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	empty, err := repo.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DashboardSummary{}, empty)

	_, err = repo.CreateMember(ctx, core.NewMemberInput(core.Fields{"name": "Ana"}))
	require.NoError(t, err)
	_, err = repo.CreateMember(ctx, core.NewMemberInput(core.Fields{"name": "Bruno"}))
	require.NoError(t, err)
	church, err := repo.CreateChurch(ctx, core.NewChurchInput(core.Fields{"name": "Sede"}))
	require.NoError(t, err)
	_, err = repo.CreatePastor(ctx, core.NewPastorInput(core.Fields{"name": "Pr. Silva", "church_id": church.ID}))
	require.NoError(t, err)
	_, err = repo.CreateActivity(ctx, core.NewActivityInput(core.Fields{"activity": "Culto"}))
	require.NoError(t, err)
	addEntry(t, repo, "Income", "Tithes", "1000.555")
	addEntry(t, repo, "Expense", "Energy", "300.111")

	got, err := repo.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DashboardSummary{
		Members:    2,
		Pastors:    1,
		Churches:   1,
		Activities: 1,
		CashFlow: core.CashFlow{
			Income:  core.Money{Cents: 100056},
			Expense: core.Money{Cents: 30011},
			Balance: core.Money{Cents: 70045},
		},
	}, got)

	cf, err := repo.CashFlow(ctx)
	require.NoError(t, err)
	assert.Equal(t, cf, got.CashFlow)
}
