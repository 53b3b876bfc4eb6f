package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	// sqlite driver (pure Go).
	_ "modernc.org/sqlite"
)

func init() {
	Register("sqlite", func() Adapter { return NewSQLiteAdapter() })
}

// SQLiteAdapter implements the Adapter interface for SQLite.
type SQLiteAdapter struct {
	BaseSQLAdapter
}

// NewSQLiteAdapter creates a new SQLite adapter instance.
func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{}
}

// Connect establishes a connection to SQLite.
// Use ":memory:" or an empty path for an in-memory database.
func (a *SQLiteAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Snapshot introspects the SQLite database via sqlite_master and PRAGMAs.
func (a *SQLiteAdapter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if a.DB == nil {
		return nil, ErrNotConnected
	}

	rows, err := a.DB.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	snap := &Snapshot{Tables: make([]Table, 0, len(names))}
	for _, name := range names {
		table, err := a.introspectTable(ctx, name)
		if err != nil {
			return nil, err
		}
		snap.Tables = append(snap.Tables, *table)
	}
	sort.Slice(snap.Tables, func(i, j int) bool { return snap.Tables[i].Name < snap.Tables[j].Name })
	return snap, nil
}

func (a *SQLiteAdapter) introspectTable(ctx context.Context, name string) (*Table, error) {
	table := &Table{Name: name}

	//nolint:gosec // Table names come from sqlite_master, not user input
	rows, err := a.DB.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, name))
	if err != nil {
		return nil, fmt.Errorf("failed to query columns for %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column for %s: %w", name, err)
		}
		table.Columns = append(table.Columns, Column{
			Name:       colName,
			Type:       colType,
			PrimaryKey: pk > 0,
			Position:   cid + 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns for %s: %w", name, err)
	}

	//nolint:gosec // Table names come from sqlite_master, not user input
	fkRows, err := a.DB.QueryContext(ctx, fmt.Sprintf(`PRAGMA foreign_key_list(%q)`, name))
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys for %s: %w", name, err)
	}
	defer func() { _ = fkRows.Close() }()

	for fkRows.Next() {
		var (
			id, seq            int
			refTable           string
			fromCol            string
			toCol              sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := fkRows.Scan(&id, &seq, &refTable, &fromCol, &toCol, &onUpdate, &onDelete, &match); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key for %s: %w", name, err)
		}
		fk := ForeignKey{Column: fromCol, ReferencesTable: refTable, ReferencesColumn: toCol.String}
		// SQLite reports a NULL referenced column for implicit PK references.
		if fk.ReferencesColumn == "" {
			fk.ReferencesColumn = "id"
		}
		table.ForeignKeys = append(table.ForeignKeys, fk)
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys for %s: %w", name, err)
	}

	return table, nil
}

// Ensure SQLiteAdapter implements Adapter.
var _ Adapter = (*SQLiteAdapter)(nil)
