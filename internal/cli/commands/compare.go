package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	var strategies []string
	var showSchemas bool

	cmd := &cobra.Command{
		Use:   "compare <query>",
		Short: "Run a query through multiple strategies side by side",
		Long: `Compare runs the same query through each retrieval strategy and prints a
table of reduction, timing, and table counts. With no --with flags, every
registered strategy is compared.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			query := strings.Join(args, " ")
			results, err := app.Manager.Compare(cmd.Context(), query, strategies)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Query: %s\n\n", query)

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Strategy", "Status", "Tables", "Chars", "Reduction", "Time (ms)"})
			for _, r := range results {
				status := "ok"
				if !r.Success {
					status = "failed: " + r.Error
				}
				t.AppendRow(table.Row{
					r.Strategy, status, r.TableCount, r.SchemaChars,
					fmt.Sprintf("%.1f%%", r.TokenReductionPct),
					fmt.Sprintf("%.2f", r.ResponseTimeMS),
				})
			}
			t.Render()

			if showSchemas {
				for _, r := range results {
					if !r.Success {
						continue
					}
					_, _ = fmt.Fprintf(out, "\n=== %s ===\n%s\n", r.Strategy, r.Schema)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&strategies, "with", nil, "Strategies to compare (repeatable; default: all)")
	cmd.Flags().BoolVar(&showSchemas, "schemas", false, "Print each strategy's schema text")
	return cmd
}
