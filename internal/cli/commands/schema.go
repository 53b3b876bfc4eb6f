package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemascope/internal/retrieval"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the full schema of the target database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ds, err := app.Manager.Descriptors(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), retrieval.RenderFull(ds))
			return nil
		},
	}
}
