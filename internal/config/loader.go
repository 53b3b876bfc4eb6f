package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/schemascope/internal/embed"
	"github.com/leapstack-labs/schemascope/internal/retrieval"
)

// Config file names, checked in order.
const (
	ConfigFileName    = "schemascope.yaml"
	ConfigFileNameAlt = "schemascope.yml"
)

// EnvPrefix namespaces environment variable overrides.
// SCHEMASCOPE_TARGET_TYPE=duckdb maps to target.type.
const EnvPrefix = "SCHEMASCOPE_"

// Default values applied before any other configuration source.
const (
	DefaultStrategy    = "keyword"
	DefaultMetricsPath = ".schemascope/metrics.db"
	DefaultIndexDir    = ".schemascope/index"
	DefaultServerPort  = 8080
)

// flagKeys bridges CLI flag names to nested config keys.
var flagKeys = map[string]string{
	"target-type":  "target.type",
	"database":     "target.database",
	"host":         "target.host",
	"port":         "target.port",
	"user":         "target.user",
	"db-schema":    "target.schema",
	"strategy":     "retrieval.default_strategy",
	"max-tables":   "retrieval.max_tables",
	"index-dir":    "retrieval.index_dir",
	"embeddings":   "embeddings.provider",
	"metrics-path": "metrics.path",
	"listen-host":  "server.host",
	"listen-port":  "server.port",
}

// Load builds the configuration from, in ascending precedence: built-in
// defaults, the config file (explicit path or schemascope.yaml in the
// working directory), SCHEMASCOPE_ environment variables, and explicitly
// set CLI flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"target.type":                "sqlite",
		"retrieval.default_strategy": DefaultStrategy,
		"retrieval.max_tables":       retrieval.DefaultMaxTables,
		"retrieval.keyword.exact":    retrieval.DefaultWeights().Exact,
		"retrieval.keyword.partial":  retrieval.DefaultWeights().Partial,
		"retrieval.keyword.table_name": retrieval.DefaultWeights().TableName,
		"retrieval.min_similarity":   retrieval.DefaultMinSimilarity,
		"retrieval.index_dir":        DefaultIndexDir,
		"embeddings.provider":        "hash",
		"embeddings.dimension":       embed.DefaultDimension,
		"metrics.path":               DefaultMetricsPath,
		"server.host":                "127.0.0.1",
		"server.port":                DefaultServerPort,
		"verbose":                    false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// SCHEMASCOPE_RETRIEVAL_MAX_TABLES -> retrieval.max_tables. Single
	// underscores separate sections; section and key names themselves
	// contain no further mapping.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Short flag names map onto nested config keys explicitly;
			// anything unmapped falls through as a top-level key.
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.Target.Password = expandEnvVars(cfg.Target.Password)
	cfg.Target.User = expandEnvVars(cfg.Target.User)
	cfg.Target.Host = expandEnvVars(cfg.Target.Host)
	cfg.Embeddings.APIKey = expandEnvVars(cfg.Embeddings.APIKey)

	// --database names a file for file-based targets and a database for
	// network targets; bridge it onto the path when no path was given.
	if cfg.Target.Path == "" && cfg.Target.Database != "" {
		switch strings.ToLower(cfg.Target.Type) {
		case "sqlite", "duckdb":
			cfg.Target.Path = cfg.Target.Database
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile() string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKeyMapper translates SCHEMASCOPE_SECTION_SOME_KEY to
// section.some_key. The first underscore separates section from key; the
// remainder stays snake_case.
func envKeyMapper(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

var envVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars substitutes ${VAR} references so credentials can stay out
// of the config file.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val := os.Getenv(name); val != "" {
			return val
		}
		return match
	})
}
