package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemascope/internal/retrieval"
)

// NewRetrieveCommand creates the retrieve command.
func NewRetrieveCommand() *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:   "retrieve [query]",
		Short: "Retrieve the schema subset relevant to a query",
		Long: `Retrieve selects the tables relevant to a natural-language query and
prints them as compact schema text.

With no query argument, retrieve starts an interactive prompt.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if len(args) == 0 {
				return runRetrieveREPL(cmd, app, showStats)
			}

			query := strings.Join(args, " ")
			return retrieveOnce(cmd, app, query, showStats)
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "Print reduction and timing statistics")
	return cmd
}

func retrieveOnce(cmd *cobra.Command, app *App, query string, showStats bool) error {
	res, err := app.Manager.Retrieve(cmd.Context(), query, app.Config.Retrieval.DefaultStrategy)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, res.Schema)
	if showStats {
		_, _ = fmt.Fprintf(out, "\nstrategy=%s tables=%d chars=%d reduction=%.1f%% time=%.2fms\n",
			res.Strategy, res.TableCount, res.SchemaChars, res.TokenReductionPct, res.ResponseTimeMS)
	}
	return nil
}

func runRetrieveREPL(cmd *cobra.Command, app *App, showStats bool) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "schemascope> ",
		HistoryFile:     ".schemascope/history",
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Schemascope interactive retrieval (strategy: %s)\n",
		app.Config.Retrieval.DefaultStrategy)
	_, _ = fmt.Fprintln(out, "Type a query, .strategy <name> to switch, .quit to exit")
	_, _ = fmt.Fprintln(out)

	strategy := app.Config.Retrieval.DefaultStrategy
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd.Context(), out, app.Manager, line, &strategy); quit {
				break
			}
			continue
		}

		res, err := app.Manager.Retrieve(cmd.Context(), line, strategy)
		if err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(out, res.Schema)
		if showStats {
			_, _ = fmt.Fprintf(out, "\nstrategy=%s tables=%d chars=%d reduction=%.1f%% time=%.2fms\n",
				res.Strategy, res.TableCount, res.SchemaChars, res.TokenReductionPct, res.ResponseTimeMS)
		}
		_, _ = fmt.Fprintln(out)
	}
	return nil
}

// handleDotCommand processes REPL dot-commands. Returns true on .quit.
func handleDotCommand(ctx context.Context, out io.Writer, m *retrieval.Manager, line string, strategy *string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".quit", ".exit":
		return true
	case ".strategy":
		if len(fields) < 2 {
			_, _ = fmt.Fprintf(out, "current strategy: %s (available: %v)\n", *strategy, m.StrategyNames())
			return false
		}
		*strategy = fields[1]
		_, _ = fmt.Fprintf(out, "strategy set to %s\n", *strategy)
	case ".refresh":
		if err := m.Refresh(ctx); err != nil {
			_, _ = fmt.Fprintf(out, "refresh failed: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintln(out, "schema refreshed")
	case ".help":
		_, _ = fmt.Fprintln(out, "commands: .strategy [name], .refresh, .quit")
	default:
		_, _ = fmt.Fprintf(out, "unknown command %s (try .help)\n", fields[0])
	}
	return false
}
