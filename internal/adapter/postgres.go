package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	// postgres driver via pgx stdlib.
	_ "github.com/jackc/pgx/v5/stdlib"
)

func init() {
	Register("postgres", func() Adapter { return NewPostgresAdapter() })
}

// PostgresAdapter implements the Adapter interface for PostgreSQL.
type PostgresAdapter struct {
	BaseSQLAdapter
	schema string
}

// NewPostgresAdapter creates a new PostgreSQL adapter instance.
func NewPostgresAdapter() *PostgresAdapter {
	return &PostgresAdapter{}
}

// Connect establishes a connection to PostgreSQL.
func (a *PostgresAdapter) Connect(ctx context.Context, cfg Config) error {
	db, err := sql.Open("pgx", buildPostgresDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	a.schema = cfg.Schema
	if a.schema == "" {
		a.schema = "public"
	}
	return nil
}

func buildPostgresDSN(cfg Config) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	add("host", cfg.Host)
	if cfg.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", cfg.Port))
	}
	add("dbname", cfg.Database)
	add("user", cfg.User)
	add("password", cfg.Password)
	for k, v := range cfg.Options {
		add(k, v)
	}
	return strings.Join(parts, " ")
}

// Snapshot introspects the PostgreSQL schema via information_schema.
func (a *PostgresAdapter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if a.DB == nil {
		return nil, ErrNotConnected
	}

	tables, err := a.introspectColumns(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.introspectPrimaryKeys(ctx, tables); err != nil {
		return nil, err
	}
	if err := a.introspectForeignKeys(ctx, tables); err != nil {
		return nil, err
	}

	snap := &Snapshot{Tables: make([]Table, 0, len(tables))}
	for _, t := range tables {
		snap.Tables = append(snap.Tables, *t)
	}
	sort.Slice(snap.Tables, func(i, j int) bool { return snap.Tables[i].Name < snap.Tables[j].Name })
	return snap, nil
}

func (a *PostgresAdapter) introspectColumns(ctx context.Context) (map[string]*Table, error) {
	query := `
		SELECT c.table_name, c.column_name, c.data_type, c.ordinal_position
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE c.table_schema = $1 AND t.table_type = 'BASE TABLE'
		ORDER BY c.table_name, c.ordinal_position
	`
	rows, err := a.DB.QueryContext(ctx, query, a.schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tables := make(map[string]*Table)
	for rows.Next() {
		var (
			tableName string
			col       Column
		)
		if err := rows.Scan(&tableName, &col.Name, &col.Type, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		t, ok := tables[tableName]
		if !ok {
			t = &Table{Name: tableName}
			tables[tableName] = t
		}
		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	return tables, nil
}

func (a *PostgresAdapter) introspectPrimaryKeys(ctx context.Context, tables map[string]*Table) error {
	query := `
		SELECT tc.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1 AND tc.constraint_type = 'PRIMARY KEY'
	`
	rows, err := a.DB.QueryContext(ctx, query, a.schema)
	if err != nil {
		return fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tableName, colName string
		if err := rows.Scan(&tableName, &colName); err != nil {
			return fmt.Errorf("failed to scan primary key: %w", err)
		}
		if t, ok := tables[tableName]; ok {
			markPrimaryKey(t, colName)
		}
	}
	return rows.Err()
}

func (a *PostgresAdapter) introspectForeignKeys(ctx context.Context, tables map[string]*Table) error {
	query := `
		SELECT tc.table_name, kcu.column_name, ccu.table_name, ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		JOIN information_schema.constraint_column_usage ccu
		  ON ccu.constraint_name = tc.constraint_name
		 AND ccu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY'
	`
	rows, err := a.DB.QueryContext(ctx, query, a.schema)
	if err != nil {
		return fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tableName string
		var fk ForeignKey
		if err := rows.Scan(&tableName, &fk.Column, &fk.ReferencesTable, &fk.ReferencesColumn); err != nil {
			return fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if t, ok := tables[tableName]; ok {
			t.ForeignKeys = append(t.ForeignKeys, fk)
		}
	}
	return rows.Err()
}

// Ensure PostgresAdapter implements Adapter.
var _ Adapter = (*PostgresAdapter)(nil)
