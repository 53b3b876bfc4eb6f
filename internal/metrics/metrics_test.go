package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendAndCount(t *testing.T) {
	log := NewLog(nil, nil)

	log.Append(Record{Strategy: "keyword", Query: "q1", SchemaChars: 100, TableCount: 3})
	log.Append(Record{Strategy: "keyword", Query: "q2", SchemaChars: 200, TableCount: 5})
	log.Append(Record{Strategy: "vector", Query: "q1", SchemaChars: 150, TableCount: 4})

	assert.Equal(t, 2, log.Count("keyword"))
	assert.Equal(t, 1, log.Count("vector"))
	assert.Equal(t, 0, log.Count("full-schema"))
}

func TestLogAppendDefaults(t *testing.T) {
	log := NewLog(nil, nil)
	log.Append(Record{Strategy: "keyword"})

	summary := log.Summary()
	require.Contains(t, summary, "keyword")
	assert.Equal(t, 1, summary["keyword"].QueriesProcessed)
}

func TestSummaryAverages(t *testing.T) {
	log := NewLog(nil, nil)

	log.Append(Record{
		Strategy:          "keyword",
		TokenReductionPct: 80,
		ResponseTime:      2 * time.Millisecond,
		TableCount:        4,
	})
	log.Append(Record{
		Strategy:          "keyword",
		TokenReductionPct: 60,
		ResponseTime:      4 * time.Millisecond,
		TableCount:        2,
	})

	summary := log.Summary()
	require.Contains(t, summary, "keyword")
	s := summary["keyword"]
	assert.Equal(t, 2, s.QueriesProcessed)
	assert.InDelta(t, 70.0, s.AvgTokenReductionPct, 0.001)
	assert.InDelta(t, 3.0, s.AvgResponseTimeMS, 0.001)
	assert.InDelta(t, 3.0, s.AvgTableCount, 0.001)
}

func TestSummaryEmpty(t *testing.T) {
	log := NewLog(nil, nil)
	assert.Empty(t, log.Summary())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)

	rec := Record{
		ID:                "rec-1",
		Strategy:          "keyword",
		Query:             "total sales",
		SchemaChars:       321,
		TokenReductionPct: 72.5,
		ResponseTime:      1500 * time.Microsecond,
		TableCount:        4,
		Timestamp:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.InsertRecord(rec))
	require.NoError(t, store.Close())

	// Reopen and read back.
	store, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	recs, err := store.ListRecords()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	got := recs[0]
	assert.Equal(t, "rec-1", got.ID)
	assert.Equal(t, "keyword", got.Strategy)
	assert.Equal(t, "total sales", got.Query)
	assert.Equal(t, 321, got.SchemaChars)
	assert.InDelta(t, 72.5, got.TokenReductionPct, 0.001)
	assert.InDelta(t, 1.5, float64(got.ResponseTime.Microseconds())/1000.0, 0.001)
	assert.Equal(t, 4, got.TableCount)
}

func TestLogLoadsPersistedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.InsertRecord(Record{
		ID: "rec-1", Strategy: "vector", Query: "q", TokenReductionPct: 50,
		ResponseTime: time.Millisecond, TableCount: 3, Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, store.Close())

	store, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	log := NewLog(store, nil)
	assert.Equal(t, 1, log.Count("vector"), "summaries span process restarts")
}
