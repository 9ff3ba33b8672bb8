package admincli

import (
	"fmt"

	"github.com/spf13/cobra"

	"igreja/assets"
	"igreja/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create records from a YAML fixture",
		Long: `Create churches, pastors, members, financial entries and activities
from a YAML fixture. Pastors name their church; churches are created first.
Without --file the bundled sample fixture is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, file, cmd)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (default: bundled sample)")

	return cmd
}

func loadFixture(file string) (*seed.Fixture, error) {
	if file != "" {
		return seed.Load(file)
	}
	f, err := assets.FixturesFS.Open(assets.SampleFixture)
	if err != nil {
		return nil, fmt.Errorf("open bundled fixture: %w", err)
	}
	defer f.Close()
	return seed.Parse(f)
}

func runSeed(opts *RootOptions, file string, cmd *cobra.Command) error {
	fx, err := loadFixture(file)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	be, err := opts.openBackend(ctx, cmd)
	if err != nil {
		return err
	}
	defer be.Cleanup()

	res, err := seed.Apply(ctx, be.Registry, fx)
	if err != nil {
		return fmt.Errorf("seed stopped after %d records: %w", res.Total(), err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seeded %d records\n", res.Total())
	fmt.Fprintf(out, "  churches:   %d\n", res.Churches)
	fmt.Fprintf(out, "  pastors:    %d\n", res.Pastors)
	fmt.Fprintf(out, "  members:    %d\n", res.Members)
	fmt.Fprintf(out, "  finance:    %d\n", res.Finance)
	fmt.Fprintf(out, "  activities: %d\n", res.Activities)
	return nil
}
