package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	// duckdb driver.
	_ "github.com/marcboeker/go-duckdb"
)

func init() {
	Register("duckdb", func() Adapter { return NewDuckDBAdapter() })
}

// DuckDBAdapter implements the Adapter interface for DuckDB.
type DuckDBAdapter struct {
	BaseSQLAdapter
	schema string
}

// NewDuckDBAdapter creates a new DuckDB adapter instance.
func NewDuckDBAdapter() *DuckDBAdapter {
	return &DuckDBAdapter{}
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" or an empty path for an in-memory database.
func (a *DuckDBAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	a.schema = cfg.Schema
	if a.schema == "" {
		a.schema = "main"
	}
	return nil
}

// Snapshot introspects the DuckDB schema via information_schema and
// duckdb_constraints().
func (a *DuckDBAdapter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if a.DB == nil {
		return nil, ErrNotConnected
	}

	tables, err := a.introspectColumns(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.introspectConstraints(ctx, tables); err != nil {
		return nil, err
	}

	snap := &Snapshot{Tables: make([]Table, 0, len(tables))}
	for _, t := range tables {
		snap.Tables = append(snap.Tables, *t)
	}
	sort.Slice(snap.Tables, func(i, j int) bool { return snap.Tables[i].Name < snap.Tables[j].Name })
	return snap, nil
}

func (a *DuckDBAdapter) introspectColumns(ctx context.Context) (map[string]*Table, error) {
	query := `
		SELECT table_name, column_name, data_type, ordinal_position
		FROM information_schema.columns
		WHERE table_schema = ?
		ORDER BY table_name, ordinal_position
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

var (
	pkConstraintRe = regexp.MustCompile(`PRIMARY KEY\s*\(([^)]+)\)`)
	fkConstraintRe = regexp.MustCompile(`FOREIGN KEY\s*\(([^)]+)\)\s*REFERENCES\s+(\S+?)\s*\(([^)]+)\)`)
)

// introspectConstraints fills in primary-key flags and foreign-key edges by
// parsing duckdb_constraints() constraint text. DuckDB exposes constraint
// columns as list values, which database/sql cannot scan portably, so the
// textual form is the stable surface.
func (a *DuckDBAdapter) introspectConstraints(ctx context.Context, tables map[string]*Table) error {
	query := `
		SELECT table_name, constraint_type, constraint_text
		FROM duckdb_constraints()
		WHERE schema_name = ? AND constraint_type IN ('PRIMARY KEY', 'FOREIGN KEY')
	`
	rows, err := a.DB.QueryContext(ctx, query, a.schema)
	if err != nil {
		return fmt.Errorf("failed to query constraints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tableName, constraintType, constraintText string
		if err := rows.Scan(&tableName, &constraintType, &constraintText); err != nil {
			return fmt.Errorf("failed to scan constraint: %w", err)
		}
		t, ok := tables[tableName]
		if !ok {
			continue
		}

		switch constraintType {
		case "PRIMARY KEY":
			if m := pkConstraintRe.FindStringSubmatch(constraintText); m != nil {
				for _, col := range splitIdentifierList(m[1]) {
					markPrimaryKey(t, col)
				}
			}
		case "FOREIGN KEY":
			if m := fkConstraintRe.FindStringSubmatch(constraintText); m != nil {
				cols := splitIdentifierList(m[1])
				refCols := splitIdentifierList(m[3])
				refTable := strings.Trim(m[2], `"`)
				for i, col := range cols {
					refCol := ""
					if i < len(refCols) {
						refCol = refCols[i]
					}
					t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
						Column:           col,
						ReferencesTable:  refTable,
						ReferencesColumn: refCol,
					})
				}
			}
		}
	}
	return rows.Err()
}

func splitIdentifierList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func markPrimaryKey(t *Table, col string) {
	for i := range t.Columns {
		if t.Columns[i].Name == col {
			t.Columns[i].PrimaryKey = true
			return
		}
	}
}

// Ensure DuckDBAdapter implements Adapter.
var _ Adapter = (*DuckDBAdapter)(nil)
