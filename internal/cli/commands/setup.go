// Package commands implements the schemascope subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemascope/internal/adapter"
	"github.com/leapstack-labs/schemascope/internal/config"
	"github.com/leapstack-labs/schemascope/internal/embed"
	"github.com/leapstack-labs/schemascope/internal/metrics"
	"github.com/leapstack-labs/schemascope/internal/retrieval"
)

// App bundles the wired components a command needs: the connected target
// adapter, the retrieval manager with all strategies registered, and the
// metrics store.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Adapter adapter.Adapter
	Manager *retrieval.Manager

	store metrics.Store
}

// loadConfig reads configuration for a command, honoring the global
// --config flag and all flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	cfgFile, _ := flags.GetString("config")
	return config.Load(cfgFile, flags)
}

// newApp wires an App from configuration: adapter, metrics, embedder, and
// every retrieval strategy.
func newApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.New(slog.DiscardHandler)
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	a, err := adapter.New(cfg.Target)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cfg.Target); err != nil {
		return nil, fmt.Errorf("failed to connect to %s target: %w", cfg.Target.Type, err)
	}

	var store metrics.Store
	if cfg.Metrics.Path != "" {
		if dir := filepath.Dir(cfg.Metrics.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				_ = a.Close()
				return nil, fmt.Errorf("failed to create metrics directory: %w", err)
			}
		}
		s, err := metrics.OpenSQLiteStore(cfg.Metrics.Path)
		if err != nil {
			// A broken metrics store degrades to in-memory recording.
			logger.Warn("failed to open metrics store, recording in memory only",
				"path", cfg.Metrics.Path, "error", err)
		} else {
			store = s
		}
	}
	log := metrics.NewLog(store, logger)

	embedder, err := embed.New(cfg.Embeddings)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	manager := retrieval.NewManager(a.Snapshot, retrieval.Options{
		MaxTables:       cfg.Retrieval.MaxTables,
		DefaultStrategy: cfg.Retrieval.DefaultStrategy,
		Metrics:         log,
		Logger:          logger,
	})

	keyword := retrieval.NewKeywordStrategy(cfg.Retrieval.Keyword)
	minSim := float32(cfg.Retrieval.MinSimilarity)
	manager.Register(retrieval.NewFullSchemaStrategy())
	manager.Register(keyword)
	manager.Register(retrieval.NewVectorStrategy(
		"vector", retrieval.NewMemoryStore(), embedder, keyword, minSim, logger))
	manager.Register(retrieval.NewVectorStrategy(
		"vector-durable", retrieval.NewPersistentStore(cfg.Retrieval.IndexDir), embedder, keyword, minSim, logger))

	return &App{
		Config:  cfg,
		Logger:  logger,
		Adapter: a,
		Manager: manager,
		store:   store,
	}, nil
}

// setupApp loads config and wires the App for a command.
func setupApp(cmd *cobra.Command) (*App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg)
}

// Close releases the adapter connection and the metrics store.
func (a *App) Close() error {
	var firstErr error
	if a.Adapter != nil {
		if err := a.Adapter.Close(); err != nil {
			firstErr = err
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
