package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemascope/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var withData bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the demo e-commerce schema on the target",
		Long: `Seed creates a demo e-commerce schema on the configured target so the
retrieval strategies can be tried without an existing database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := seed.Apply(cmd.Context(), app.Adapter, withData); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created demo schema (%d tables)\n", seed.TableCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&withData, "data", true, "Insert sample rows")
	return cmd
}
