package admincli

import (
	"fmt"

	"github.com/spf13/cobra"

	"igreja/internal/storage"
)

// MigrateResult is the JSON payload of the migrate command.
type MigrateResult struct {
	Driver  string `json:"driver"`
	Version uint   `json:"version"`
	Dirty   bool   `json:"dirty"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	driver, err := storage.ParseDriver(cfg.DatabaseDriver)
	if err != nil {
		return err
	}

	if err := storage.RunMigrations(driver, cfg.DSN()); err != nil {
		return err
	}
	version, dirty, err := storage.MigrationVersion(driver, cfg.DSN())
	if err != nil {
		return err
	}

	res := MigrateResult{Driver: string(driver), Version: version, Dirty: dirty}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", driver, version)
	return nil
}
