package admincli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print cash flow and category totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(rootOpts, cmd)
		},
	}
}

func runReport(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	be, err := opts.openBackend(ctx, cmd)
	if err != nil {
		return err
	}
	defer be.Cleanup()

	snap, err := be.Reports.Snapshot(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(out, snap)
	}
	writeBalance(out, snap.CashFlow)
	fmt.Fprintln(out)
	writeCategoryTable(out, "Income by category", snap.Income)
	fmt.Fprintln(out)
	writeCategoryTable(out, "Expenses by category", snap.Expenses)
	return nil
}
