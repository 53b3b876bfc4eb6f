// Package cli provides the command-line interface for schemascope.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemascope/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemascope",
		Short: "Schemascope - Schema Relevance Retrieval Engine",
		Long: `Schemascope selects the minimal set of database tables relevant to a
natural-language query and renders them as compact schema text, so large
schemas fit in small context windows.

It supports keyword, vector, and full-schema retrieval strategies with
automatic fallback, plus a comparison harness for benchmarking them.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags; each maps onto a config key and overrides
	// config file and environment values.
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./schemascope.yaml)")
	rootCmd.PersistentFlags().String("target-type", "", "Target database type (sqlite|duckdb|postgres)")
	rootCmd.PersistentFlags().String("database", "", "Database name or file path (empty for in-memory)")
	rootCmd.PersistentFlags().String("host", "", "Database host")
	rootCmd.PersistentFlags().Int("port", 0, "Database port")
	rootCmd.PersistentFlags().String("user", "", "Database user")
	rootCmd.PersistentFlags().StringP("strategy", "s", "", "Default retrieval strategy")
	rootCmd.PersistentFlags().Int("max-tables", 0, "Maximum tables per selection")
	rootCmd.PersistentFlags().String("embeddings", "", "Embedding provider (hash|openai)")
	rootCmd.PersistentFlags().String("index-dir", "", "Directory for durable vector indices")
	rootCmd.PersistentFlags().String("metrics-path", "", "Path to the metrics database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("strategy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"keyword", "vector", "vector-durable", "full-schema"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("target-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"sqlite", "duckdb", "postgres"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewRetrieveCommand())
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewStrategiesCommand())
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewServeCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
