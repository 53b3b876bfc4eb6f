package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/philippgille/chromem-go"
	"golang.org/x/sync/singleflight"

	"github.com/leapstack-labs/schemascope/internal/catalog"
	"github.com/leapstack-labs/schemascope/internal/embed"
)

// DefaultMinSimilarity filters out matches below this cosine similarity.
const DefaultMinSimilarity = 0.1

type indexState int

const (
	indexUninitialized indexState = iota
	indexReady
	indexDegraded
)

// VectorStrategy selects tables by semantic similarity between the query
// and synthesized table descriptions. The index is built lazily on first
// use and keyed by the schema fingerprint; concurrent first calls share a
// single build. When the index cannot be built or queried the strategy
// degrades to its keyword fallback instead of failing.
type VectorStrategy struct {
	name          string
	store         IndexStore
	embedder      embed.Embedder
	fallback      *KeywordStrategy
	minSimilarity float32
	logger        *slog.Logger

	group singleflight.Group

	mu          sync.Mutex
	state       indexState
	fingerprint string
	collection  *chromem.Collection
}

// NewVectorStrategy creates a vector strategy backed by the given index
// store. The fallback handles degraded operation and empty result sets.
func NewVectorStrategy(name string, store IndexStore, embedder embed.Embedder, fallback *KeywordStrategy, minSimilarity float32, logger *slog.Logger) *VectorStrategy {
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &VectorStrategy{
		name:          name,
		store:         store,
		embedder:      embedder,
		fallback:      fallback,
		minSimilarity: minSimilarity,
		logger:        logger,
	}
}

func (s *VectorStrategy) Name() string { return s.name }

// Select queries the vector index for the tables most similar to the
// query. Matches below the similarity floor are dropped; an empty match
// set falls through to the keyword fallback so the caller always gets a
// usable selection.
func (s *VectorStrategy) Select(ctx context.Context, query string, ds *catalog.DescriptorSet, maxTables int) ([]string, error) {
	c, err := s.ensureIndex(ctx, ds)
	if err != nil {
		s.logger.Warn("vector index unavailable, using keyword fallback",
			"strategy", s.name, "error", err)
		return s.fallback.Select(ctx, query, ds, maxTables)
	}

	n := maxTables
	if count := c.Count(); count < n {
		n = count
	}
	if n == 0 {
		return s.fallback.Select(ctx, query, ds, maxTables)
	}

	results, err := c.Query(ctx, query, n, nil, nil)
	if err != nil {
		s.logger.Warn("vector query failed, using keyword fallback",
			"strategy", s.name, "error", err)
		return s.fallback.Select(ctx, query, ds, maxTables)
	}

	tables := make([]string, 0, len(results))
	for _, r := range results {
		if r.Similarity < s.minSimilarity {
			continue
		}
		tables = append(tables, r.ID)
	}
	if len(tables) == 0 {
		return fallbackTables(query, ds, maxTables), nil
	}
	return tables, nil
}

// ensureIndex returns a ready collection for the descriptor set, building
// it at most once per fingerprint across goroutines. A degraded index
// stays degraded until Invalidate.
func (s *VectorStrategy) ensureIndex(ctx context.Context, ds *catalog.DescriptorSet) (*chromem.Collection, error) {
	fp := ds.Fingerprint()

	s.mu.Lock()
	if s.fingerprint == fp {
		switch s.state {
		case indexReady:
			c := s.collection
			s.mu.Unlock()
			return c, nil
		case indexDegraded:
			s.mu.Unlock()
			return nil, fmt.Errorf("vector index degraded for fingerprint %s", fp)
		}
	}
	s.mu.Unlock()

	_, err, _ := s.group.Do(fp, func() (any, error) {
		c, populated, err := s.store.Collection(fp, embed.Func(s.embedder))
		if err == nil && !populated {
			err = populateCollection(ctx, c, ds)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.fingerprint = fp
		if err != nil {
			s.state = indexDegraded
			s.collection = nil
			return nil, err
		}
		s.state = indexReady
		s.collection = c
		return c, nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fingerprint != fp || s.state != indexReady {
		return nil, fmt.Errorf("vector index not ready for fingerprint %s", fp)
	}
	return s.collection, nil
}

// Invalidate drops the current index so the next Select rebuilds it. Used
// after a schema refresh and to recover from a degraded index.
func (s *VectorStrategy) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = indexUninitialized
	s.fingerprint = ""
	s.collection = nil
}

func (s *VectorStrategy) Describe() Info {
	desc := "Embeds synthesized table descriptions and ranks tables by cosine similarity to the query."
	if s.name == "vector-durable" {
		desc = "Vector retrieval with an on-disk index that survives restarts for unchanged schemas."
	}
	return Info{
		Name:        s.name,
		Description: desc,
		Pros:        []string{"understands synonyms and phrasing", "no per-table keyword curation"},
		Cons:        []string{"index build cost on first query", "quality depends on the embedding model"},
		BestFor:     "exploratory or loosely-worded analytical questions",
	}
}

var _ Strategy = (*VectorStrategy)(nil)
