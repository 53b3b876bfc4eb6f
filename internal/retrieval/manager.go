package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/leapstack-labs/schemascope/internal/adapter"
	"github.com/leapstack-labs/schemascope/internal/catalog"
	"github.com/leapstack-labs/schemascope/internal/metrics"
)

// DefaultMaxTables caps selections when no budget is configured.
const DefaultMaxTables = 5

// SnapshotFunc produces the current schema snapshot of the target database.
type SnapshotFunc func(ctx context.Context) (*adapter.Snapshot, error)

// Invalidator is implemented by strategies holding a derived index that
// must be dropped when the schema changes.
type Invalidator interface {
	Invalidate()
}

// Result is one completed retrieval.
type Result struct {
	Strategy          string        `json:"strategy"`
	Tables            []string      `json:"tables"`
	Schema            string        `json:"schema"`
	SchemaChars       int           `json:"schema_chars"`
	TokenReductionPct float64       `json:"token_reduction_pct"`
	ResponseTime      time.Duration `json:"-"`
	ResponseTimeMS    float64       `json:"response_time_ms"`
	TableCount        int           `json:"table_count"`
}

// ComparisonResult is one strategy's entry in a side-by-side comparison.
type ComparisonResult struct {
	Strategy          string        `json:"strategy"`
	Success           bool          `json:"success"`
	Error             string        `json:"error,omitempty"`
	Schema            string        `json:"schema,omitempty"`
	SchemaChars       int           `json:"schema_chars"`
	TokenReductionPct float64       `json:"token_reduction_pct"`
	ResponseTime      time.Duration `json:"-"`
	ResponseTimeMS    float64       `json:"response_time_ms"`
	TableCount        int           `json:"table_count"`
}

// Options configures a Manager.
type Options struct {
	MaxTables       int
	DefaultStrategy string
	Metrics         *metrics.Log
	Logger          *slog.Logger
}

// Manager owns the strategy registry, the cached descriptor set, and the
// fallback chain that guarantees retrieval always yields usable schema
// text. The descriptor set is built lazily from the snapshot function and
// is immutable once published; Refresh swaps in a new one.
type Manager struct {
	logger    *slog.Logger
	snapshot  SnapshotFunc
	maxTables int
	defName   string
	log       *metrics.Log

	group singleflight.Group

	mu sync.RWMutex
	ds *catalog.DescriptorSet

	stratMu    sync.RWMutex
	strategies map[string]Strategy
	order      []string
}

// NewManager creates a manager over the given snapshot source. Strategies
// are registered separately with Register.
func NewManager(snapshot SnapshotFunc, opts Options) *Manager {
	if opts.MaxTables <= 0 {
		opts.MaxTables = DefaultMaxTables
	}
	if opts.DefaultStrategy == "" {
		opts.DefaultStrategy = "keyword"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewLog(nil, opts.Logger)
	}
	return &Manager{
		logger:     opts.Logger,
		snapshot:   snapshot,
		maxTables:  opts.MaxTables,
		defName:    opts.DefaultStrategy,
		log:        opts.Metrics,
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy. Re-registering a name replaces it in place.
func (m *Manager) Register(s Strategy) {
	m.stratMu.Lock()
	defer m.stratMu.Unlock()
	if _, exists := m.strategies[s.Name()]; !exists {
		m.order = append(m.order, s.Name())
	}
	m.strategies[s.Name()] = s
}

// StrategyNames returns registered strategy names in registration order.
func (m *Manager) StrategyNames() []string {
	m.stratMu.RLock()
	defer m.stratMu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Strategies returns metadata for every registered strategy.
func (m *Manager) Strategies() []Info {
	m.stratMu.RLock()
	defer m.stratMu.RUnlock()
	out := make([]Info, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.strategies[name].Describe())
	}
	return out
}

func (m *Manager) strategy(name string) (Strategy, bool) {
	m.stratMu.RLock()
	defer m.stratMu.RUnlock()
	s, ok := m.strategies[name]
	return s, ok
}

// Descriptors returns the cached descriptor set, building it on first use.
// Concurrent first calls share one snapshot fetch.
func (m *Manager) Descriptors(ctx context.Context) (*catalog.DescriptorSet, error) {
	m.mu.RLock()
	ds := m.ds
	m.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return m.buildDescriptors(ctx)
}

func (m *Manager) buildDescriptors(ctx context.Context) (*catalog.DescriptorSet, error) {
	v, err, _ := m.group.Do("descriptors", func() (any, error) {
		snap, err := m.snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
		}
		ds := catalog.Build(snap)
		m.mu.Lock()
		m.ds = ds
		m.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.DescriptorSet), nil
}

// Retrieve runs one retrieval for the query and records a performance
// measurement. Unknown strategy names degrade to the default strategy with
// a warning; a failing strategy degrades to keyword; a failing keyword
// degrades to the full schema. The only error returned is an unavailable
// schema snapshot.
func (m *Manager) Retrieve(ctx context.Context, query, strategyName string) (*Result, error) {
	ds, err := m.Descriptors(ctx)
	if err != nil {
		return nil, err
	}

	if strategyName == "" {
		strategyName = m.defName
	}
	start := time.Now()
	name, tables := m.selectTables(ctx, query, strategyName, ds)
	schema := Render(ds, tables)
	elapsed := time.Since(start)

	res := m.buildResult(name, tables, schema, ds, elapsed)
	m.log.Append(metrics.Record{
		Strategy:          res.Strategy,
		Query:             query,
		SchemaChars:       res.SchemaChars,
		TokenReductionPct: res.TokenReductionPct,
		ResponseTime:      res.ResponseTime,
		TableCount:        res.TableCount,
	})
	return res, nil
}

// GetSchemaForQuery is the single-call surface: query in, schema text out.
func (m *Manager) GetSchemaForQuery(ctx context.Context, query, strategyName string) (string, error) {
	res, err := m.Retrieve(ctx, query, strategyName)
	if err != nil {
		return "", err
	}
	return res.Schema, nil
}

// selectTables resolves the strategy and walks the fallback chain. The
// returned name is the strategy that actually produced the selection.
func (m *Manager) selectTables(ctx context.Context, query, strategyName string, ds *catalog.DescriptorSet) (string, []string) {
	s, ok := m.strategy(strategyName)
	if !ok {
		m.logger.Warn("unknown strategy requested, using default",
			"requested", strategyName, "default", m.defName)
		strategyName = m.defName
		if s, ok = m.strategy(strategyName); !ok {
			return "full-schema", ds.Names()
		}
	}

	tables, err := s.Select(ctx, query, ds, m.maxTables)
	if err == nil {
		return strategyName, tables
	}
	m.logger.Warn("strategy failed, falling back to keyword",
		"strategy", strategyName, "error", err)

	if kw, ok := m.strategy("keyword"); ok && strategyName != "keyword" {
		if tables, err = kw.Select(ctx, query, ds, m.maxTables); err == nil {
			return "keyword", tables
		}
		m.logger.Warn("keyword fallback failed, using full schema", "error", err)
	}
	return "full-schema", ds.Names()
}

// Compare runs the query through each named strategy (all registered when
// names is empty) and reports side-by-side results. Comparison runs do not
// feed the performance log.
func (m *Manager) Compare(ctx context.Context, query string, names []string) ([]ComparisonResult, error) {
	ds, err := m.Descriptors(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = m.StrategyNames()
	}

	out := make([]ComparisonResult, 0, len(names))
	for _, name := range names {
		s, ok := m.strategy(name)
		if !ok {
			out = append(out, ComparisonResult{
				Strategy: name,
				Error:    (&UnknownStrategyError{Name: name, Available: m.StrategyNames()}).Error(),
			})
			continue
		}

		start := time.Now()
		tables, err := s.Select(ctx, query, ds, m.maxTables)
		elapsed := time.Since(start)
		if err != nil {
			out = append(out, ComparisonResult{
				Strategy:       name,
				Error:          err.Error(),
				ResponseTime:   elapsed,
				ResponseTimeMS: durationMS(elapsed),
			})
			continue
		}

		schema := Render(ds, tables)
		res := m.buildResult(name, tables, schema, ds, elapsed)
		out = append(out, ComparisonResult{
			Strategy:          name,
			Success:           true,
			Schema:            schema,
			SchemaChars:       res.SchemaChars,
			TokenReductionPct: res.TokenReductionPct,
			ResponseTime:      elapsed,
			ResponseTimeMS:    res.ResponseTimeMS,
			TableCount:        res.TableCount,
		})
	}
	return out, nil
}

// Summary reports per-strategy averages from the performance log.
func (m *Manager) Summary() map[string]metrics.StrategySummary {
	return m.log.Summary()
}

// Refresh re-snapshots the target schema, swaps in a new descriptor set,
// and drops derived indices so they rebuild against the new fingerprint.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.ds = nil
	m.mu.Unlock()

	if _, err := m.buildDescriptors(ctx); err != nil {
		return err
	}

	m.stratMu.RLock()
	defer m.stratMu.RUnlock()
	for _, name := range m.order {
		if inv, ok := m.strategies[name].(Invalidator); ok {
			inv.Invalidate()
		}
	}
	return nil
}

func (m *Manager) buildResult(name string, tables []string, schema string, ds *catalog.DescriptorSet, elapsed time.Duration) *Result {
	full := len(RenderFull(ds))
	count := 0
	for _, t := range tables {
		if _, ok := ds.Get(t); ok {
			count++
		}
	}
	if count == 0 {
		// Empty selections render the full schema.
		count = ds.Len()
	}
	return &Result{
		Strategy:          name,
		Tables:            tables,
		Schema:            schema,
		SchemaChars:       len(schema),
		TokenReductionPct: TokenReduction(full, len(schema)),
		ResponseTime:      elapsed,
		ResponseTimeMS:    durationMS(elapsed),
		TableCount:        count,
	}
}

// TokenReduction is the percentage of full-schema characters avoided by a
// selection. A zero-length full schema reports zero reduction.
func TokenReduction(fullChars, selectedChars int) float64 {
	if fullChars == 0 {
		return 0
	}
	return float64(fullChars-selectedChars) / float64(fullChars) * 100
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
