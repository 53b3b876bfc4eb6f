// Package adapter provides database adapter interfaces and implementations
// for SchemaScope's schema introspection layer.
//
// Adapters are a read-only oracle over the target database: they expose the
// schema snapshot (tables, columns, foreign keys) that the retrieval engine
// builds its descriptors from. The only write path is Exec, used by the seed
// bootstrap.
package adapter

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotConnected is returned when an operation is attempted before Connect.
var ErrNotConnected = errors.New("database connection not established")

// Column describes a single column within a table.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	Position   int
}

// ForeignKey describes a foreign-key edge from one table to another.
type ForeignKey struct {
	Column           string
	ReferencesTable  string
	ReferencesColumn string
}

// Table is the introspected shape of one table.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Snapshot is the full set of tables at a point in time.
// Tables are sorted by name so snapshot consumers see a stable order.
type Snapshot struct {
	Tables []Table
}

// TableNames returns the names of all tables in the snapshot, in order.
func (s *Snapshot) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// Config holds database connection configuration.
type Config struct {
	Type string `koanf:"type"` // duckdb, sqlite, postgres

	// File-based databases (DuckDB, SQLite)
	Path string `koanf:"path"` // file path, or empty/":memory:" for in-memory

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	// Used only by the seed bootstrap; retrieval never writes.
	Exec(ctx context.Context, sql string) error

	// Snapshot introspects the database and returns the current schema:
	// every table with its columns and foreign-key edges.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and Exec implementations.
type BaseSQLAdapter struct {
	DB  *sql.DB
	Cfg Config
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if _, err := b.DB.ExecContext(ctx, sqlStr); err != nil {
		return err
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}
