package retrieval

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/schemascope/internal/catalog"
)

var queryTokenRe = regexp.MustCompile(`\b\w+\b`)

// Weights controls keyword relevance scoring.
type Weights struct {
	// Exact is added once per curated keyword found verbatim among the
	// query tokens.
	Exact int `koanf:"exact"`
	// Partial is added once per (keyword, query token) pair where either
	// string contains the other.
	Partial int `koanf:"partial"`
	// TableName is added once when the table's own name appears as a
	// query token.
	TableName int `koanf:"table_name"`
}

// DefaultWeights are the scoring weights used when none are configured.
func DefaultWeights() Weights {
	return Weights{Exact: 3, Partial: 1, TableName: 10}
}

// KeywordStrategy scores tables by matching query tokens against each
// table's curated keyword list. It is deterministic, needs no index, and
// serves as the universal fallback for every other strategy.
type KeywordStrategy struct {
	weights Weights
}

// NewKeywordStrategy creates a keyword strategy. Zero-valued weights fall
// back to DefaultWeights.
func NewKeywordStrategy(w Weights) *KeywordStrategy {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	return &KeywordStrategy{weights: w}
}

func (s *KeywordStrategy) Name() string { return "keyword" }

// Select scores every table and returns the top maxTables with positive
// scores. Ties keep the descriptor set's name order, so results are stable
// across calls. When nothing scores positive, the query is routed through
// the domain fallback buckets.
func (s *KeywordStrategy) Select(_ context.Context, query string, ds *catalog.DescriptorSet, maxTables int) ([]string, error) {
	tokens := queryTokens(query)

	type scored struct {
		name  string
		score int
	}
	ranked := make([]scored, 0, ds.Len())
	for _, name := range ds.Names() {
		sc := s.score(name, tokens)
		if sc > 0 {
			ranked = append(ranked, scored{name: name, score: sc})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxTables {
		ranked = ranked[:maxTables]
	}

	if len(ranked) == 0 {
		return fallbackTables(query, ds, maxTables), nil
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}
	return out, nil
}

func (s *KeywordStrategy) score(table string, tokens map[string]struct{}) int {
	score := 0
	for _, kw := range catalog.Keywords(table) {
		if _, ok := tokens[kw]; ok {
			score += s.weights.Exact
		}
		for tok := range tokens {
			if strings.Contains(tok, kw) || strings.Contains(kw, tok) {
				score += s.weights.Partial
			}
		}
	}
	if _, ok := tokens[strings.ToLower(table)]; ok {
		score += s.weights.TableName
	}
	return score
}

func (s *KeywordStrategy) Describe() Info {
	return Info{
		Name:        "keyword",
		Description: "Scores tables against curated per-table keyword lists with exact, partial, and table-name match weights.",
		Pros:        []string{"no index or model required", "deterministic and fast", "works offline"},
		Cons:        []string{"blind to synonyms and phrasing", "quality depends on curated keywords"},
		BestFor:     "short operational queries that name domain concepts directly",
	}
}

func queryTokens(query string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range queryTokenRe.FindAllString(strings.ToLower(query), -1) {
		tokens[tok] = struct{}{}
	}
	return tokens
}

var _ Strategy = (*KeywordStrategy)(nil)
