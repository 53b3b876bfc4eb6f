package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, "keyword", cfg.Retrieval.DefaultStrategy)
	assert.Equal(t, 5, cfg.Retrieval.MaxTables)
	assert.Equal(t, 3, cfg.Retrieval.Keyword.Exact)
	assert.Equal(t, 1, cfg.Retrieval.Keyword.Partial)
	assert.Equal(t, 10, cfg.Retrieval.Keyword.TableName)
	assert.InDelta(t, 0.1, cfg.Retrieval.MinSimilarity, 0.0001)
	assert.Equal(t, "hash", cfg.Embeddings.Provider)
	assert.Equal(t, 256, cfg.Embeddings.Dimension)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemascope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target:
  type: duckdb
  path: warehouse.db
retrieval:
  default_strategy: vector
  max_tables: 8
server:
  port: 9000
`), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.Target.Type)
	assert.Equal(t, "warehouse.db", cfg.Target.Path)
	assert.Equal(t, "vector", cfg.Retrieval.DefaultStrategy)
	assert.Equal(t, 8, cfg.Retrieval.MaxTables)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Unset keys keep their defaults.
	assert.Equal(t, 3, cfg.Retrieval.Keyword.Exact)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemascope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrieval:\n  max_tables: 8\n"), 0o600))

	t.Setenv("SCHEMASCOPE_RETRIEVAL_MAX_TABLES", "3")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Retrieval.MaxTables)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SCHEMASCOPE_RETRIEVAL_MAX_TABLES", "3")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-tables", 0, "")
	flags.String("strategy", "", "")
	require.NoError(t, flags.Parse([]string{"--max-tables=7", "--strategy=vector"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Retrieval.MaxTables)
	assert.Equal(t, "vector", cfg.Retrieval.DefaultStrategy)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-tables", 0, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Retrieval.MaxTables, "zero-valued unset flags must not clobber defaults")
}

func TestLoadDatabaseBridgesToPath(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "", "")
	require.NoError(t, flags.Parse([]string{"--database=shop.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "shop.db", cfg.Target.Path, "file targets treat --database as a path")
}

func TestLoadEnvVarExpansion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemascope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target:
  type: postgres
  host: localhost
  database: shop
  password: ${SCHEMASCOPE_TEST_PW}
`), 0o600))

	t.Setenv("SCHEMASCOPE_TEST_PW", "hunter2")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Target.Password)
}

func TestLoadUnknownTargetType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemascope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  type: snowflake\n"), 0o600))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snowflake")
}
