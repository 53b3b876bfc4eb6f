// Package config loads schemascope configuration from defaults, an
// optional schemascope.yaml, SCHEMASCOPE_-prefixed environment variables,
// and CLI flags, in ascending precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/schemascope/internal/adapter"
	"github.com/leapstack-labs/schemascope/internal/embed"
	"github.com/leapstack-labs/schemascope/internal/retrieval"
)

// Config is the full application configuration.
type Config struct {
	Target     adapter.Config  `koanf:"target"`
	Retrieval  RetrievalConfig `koanf:"retrieval"`
	Embeddings embed.Config    `koanf:"embeddings"`
	Metrics    MetricsConfig   `koanf:"metrics"`
	Server     ServerConfig    `koanf:"server"`
	Verbose    bool            `koanf:"verbose"`
}

// RetrievalConfig tunes strategy selection and scoring.
type RetrievalConfig struct {
	DefaultStrategy string            `koanf:"default_strategy"`
	MaxTables       int               `koanf:"max_tables"`
	Keyword         retrieval.Weights `koanf:"keyword"`
	MinSimilarity   float64           `koanf:"min_similarity"`
	IndexDir        string            `koanf:"index_dir"`
}

// MetricsConfig locates the performance record store.
type MetricsConfig struct {
	Path string `koanf:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks configuration invariants that the loader cannot default
// away.
func (c *Config) Validate() error {
	if c.Target.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(strings.ToLower(c.Target.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      c.Target.Type,
			Available: adapter.List(),
		}
	}
	if c.Retrieval.MaxTables < 0 {
		return fmt.Errorf("retrieval max_tables must be positive, got %d", c.Retrieval.MaxTables)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	return nil
}
