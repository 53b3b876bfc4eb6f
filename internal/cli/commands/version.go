package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "schemascope %s\n", version)
			_, _ = fmt.Fprintf(out, "  build date: %s\n", buildDate)
			_, _ = fmt.Fprintf(out, "  commit:     %s\n", gitCommit)
			_, _ = fmt.Fprintf(out, "  go:         %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
