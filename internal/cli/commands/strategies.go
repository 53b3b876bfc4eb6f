package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewStrategiesCommand creates the strategies command.
func NewStrategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List retrieval strategies and their trade-offs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Description", "Pros", "Cons", "Best For"})
			for _, info := range app.Manager.Strategies() {
				t.AppendRow(table.Row{
					info.Name,
					info.Description,
					strings.Join(info.Pros, "\n"),
					strings.Join(info.Cons, "\n"),
					info.BestFor,
				})
			}
			t.Render()
			return nil
		},
	}
}
