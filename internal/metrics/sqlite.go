package metrics

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	// sqlite driver for the metrics store.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore persists performance records in a SQLite database.
type SQLiteStore struct {
	mu sync.Mutex // serializes writes
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the metrics database at path and runs
// pending migrations. Use ":memory:" for a throwaway store.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping metrics database: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run metrics migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// InsertRecord appends one record. Writes are serialized.
func (s *SQLiteStore) InsertRecord(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO performance_records
		 (id, strategy, query, schema_chars, token_reduction_pct, response_time_ms, table_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Strategy, rec.Query, rec.SchemaChars, rec.TokenReductionPct,
		float64(rec.ResponseTime.Microseconds())/1000.0, rec.TableCount, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert performance record: %w", err)
	}
	return nil
}

// ListRecords returns all persisted records, oldest first.
func (s *SQLiteStore) ListRecords() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, strategy, query, schema_chars, token_reduction_pct, response_time_ms, table_count, created_at
		 FROM performance_records ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var rec Record
		var respMS float64
		if err := rows.Scan(&rec.ID, &rec.Strategy, &rec.Query, &rec.SchemaChars,
			&rec.TokenReductionPct, &respMS, &rec.TableCount, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan performance record: %w", err)
		}
		rec.ResponseTime = time.Duration(respMS * float64(time.Millisecond))
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating performance records: %w", err)
	}
	return out, nil
}

// Close closes the metrics database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
