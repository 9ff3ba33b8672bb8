package core

// CashFlow is the ledger-wide income, expense and balance.
type CashFlow struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// NewCashFlow derives the balance from the two sums.
func NewCashFlow(income, expense Money) CashFlow {
	return CashFlow{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// CategoryTotal is the summed amount of one category for a given kind.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// DashboardSummary combines record counts with the cash flow.
type DashboardSummary struct {
	Members    int64 `json:"members"`
	Pastors    int64 `json:"pastors"`
	Churches   int64 `json:"churches"`
	Activities int64 `json:"activities"`
	CashFlow
}
