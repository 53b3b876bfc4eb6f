// Package metrics records per-retrieval performance measurements.
//
// The log is append-only and owned by the retrieval manager; retrieval logic
// never reads it. Appends are serialized and fire-and-forget: persistence
// happens off the caller's goroutine so a slow disk never delays a
// retrieval result.
package metrics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one (strategy, query) performance measurement.
type Record struct {
	ID                string
	Strategy          string
	Query             string
	SchemaChars       int
	TokenReductionPct float64
	ResponseTime      time.Duration
	TableCount        int
	Timestamp         time.Time
}

// StrategySummary aggregates all records for one strategy.
type StrategySummary struct {
	QueriesProcessed     int     `json:"queries_processed"`
	AvgTokenReductionPct float64 `json:"avg_token_reduction_pct"`
	AvgResponseTimeMS    float64 `json:"avg_response_time_ms"`
	AvgTableCount        float64 `json:"avg_table_count"`
}

// Store persists records beyond process lifetime.
type Store interface {
	InsertRecord(rec Record) error
	ListRecords() ([]Record, error)
	Close() error
}

// Log is the in-memory append-only record log with optional persistence.
type Log struct {
	logger *slog.Logger
	store  Store // nil for in-memory only

	mu      sync.Mutex
	records map[string][]Record
}

// NewLog creates a record log. A nil store keeps records in memory only;
// otherwise previously persisted records are loaded so summaries span
// process restarts.
func NewLog(store Store, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Log{
		logger:  logger,
		store:   store,
		records: make(map[string][]Record),
	}
	if store != nil {
		recs, err := store.ListRecords()
		if err != nil {
			logger.Warn("failed to load persisted performance records", "error", err)
		} else {
			for _, rec := range recs {
				l.records[rec.Strategy] = append(l.records[rec.Strategy], rec)
			}
		}
	}
	return l
}

// Append records one measurement. The in-memory append is synchronous and
// cheap; the store write happens on a separate goroutine.
func (l *Log) Append(rec Record) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	l.records[rec.Strategy] = append(l.records[rec.Strategy], rec)
	l.mu.Unlock()

	if l.store != nil {
		go func() {
			if err := l.store.InsertRecord(rec); err != nil {
				l.logger.Warn("failed to persist performance record",
					"strategy", rec.Strategy, "error", err)
			}
		}()
	}
}

// Count returns the number of records held for a strategy.
func (l *Log) Count(strategy string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records[strategy])
}

// Summary aggregates per-strategy averages across all recorded calls.
func (l *Log) Summary() map[string]StrategySummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]StrategySummary, len(l.records))
	for strategy, recs := range l.records {
		if len(recs) == 0 {
			continue
		}
		var reduction, respMS, tables float64
		for _, r := range recs {
			reduction += r.TokenReductionPct
			respMS += float64(r.ResponseTime.Microseconds()) / 1000.0
			tables += float64(r.TableCount)
		}
		n := float64(len(recs))
		out[strategy] = StrategySummary{
			QueriesProcessed:     len(recs),
			AvgTokenReductionPct: reduction / n,
			AvgResponseTimeMS:    respMS / n,
			AvgTableCount:        tables / n,
		}
	}
	return out
}
