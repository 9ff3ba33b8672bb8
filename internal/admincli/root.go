// Package admincli implements the igreja-admin command line.
package admincli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"igreja/internal/backend"
	"igreja/internal/config"
	applog "igreja/internal/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format  string // "json" | "text"
	DBPath  string
	NoColor bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for igreja-admin.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "igreja-admin",
		Short: "Administrative tasks for the igreja registry",
		Long:  "Apply schema migrations, load fixture data and print financial reports for the igreja registry.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.NoColor {
				color.NoColor = true
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database path (overrides SQLITE_DB_PATH)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the environment and applies flag overrides before
// validating.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if o.DBPath != "" {
		cfg.DatabaseDriver = "sqlite"
		cfg.SQLiteDBPath = o.DBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openBackend builds the store and services. Logs go to stderr so JSON
// output stays clean.
func (o *RootOptions) openBackend(ctx context.Context, cmd *cobra.Command) (*backend.BackendResult, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	bc, err := backend.FromAppConfig(cfg, nil)
	if err != nil {
		return nil, err
	}

	lc := applog.DefaultConfig()
	lc.Component = applog.ComponentAdmin
	lc.Output = cmd.ErrOrStderr()
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Format = cfg.LogFormat
	logger := applog.New(lc)

	return backend.NewFactory(logger).CreateBackend(ctx, bc)
}
