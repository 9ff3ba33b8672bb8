package admincli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"igreja/internal/core"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCategoryTable(w io.Writer, title string, rows []core.CategoryTotal) {
	bold := color.New(color.Bold)
	bold.Fprintln(w, title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t\n", r.Category, r.Total)
	}
	tw.Flush()
}

func writeBalance(w io.Writer, cf core.CashFlow) {
	fmt.Fprintf(w, "Income:   %12s\n", cf.Income)
	fmt.Fprintf(w, "Expense:  %12s\n", cf.Expense)
	fmt.Fprint(w, "Balance:  ")
	balance := fmt.Sprintf("%12s", cf.Balance)
	if cf.Balance.Cents < 0 {
		color.New(color.FgRed).Fprintln(w, balance)
	} else {
		color.New(color.FgGreen).Fprintln(w, balance)
	}
}
