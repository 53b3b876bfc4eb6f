package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-strategy performance averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			summary := app.Manager.Summary()
			if len(summary) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No retrievals recorded yet.")
				return nil
			}

			names := make([]string, 0, len(summary))
			for name := range summary {
				names = append(names, name)
			}
			sort.Strings(names)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Strategy", "Queries", "Avg Reduction", "Avg Time (ms)", "Avg Tables"})
			for _, name := range names {
				s := summary[name]
				t.AppendRow(table.Row{
					name, s.QueriesProcessed,
					fmt.Sprintf("%.1f%%", s.AvgTokenReductionPct),
					fmt.Sprintf("%.2f", s.AvgResponseTimeMS),
					fmt.Sprintf("%.1f", s.AvgTableCount),
				})
			}
			t.Render()
			return nil
		},
	}
}
