// Package retrieval implements the schema relevance retrieval engine.
//
// Given a natural-language query and a set of table descriptors, a retrieval
// strategy selects the subset of tables most likely needed to answer the
// query. The manager owns the strategy registry, the fallback chain, and the
// comparison harness that benchmarks strategies against each other.
package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/schemascope/internal/catalog"
)

// ErrSchemaUnavailable is returned when the schema snapshot cannot be
// obtained. It is the only unrecoverable retrieval error: everything else
// degrades to a best-effort, non-empty schema text.
var ErrSchemaUnavailable = errors.New("schema snapshot unavailable")

// Strategy selects relevant tables for a query.
//
// Select returns table names in relevance order, without duplicates,
// truncated to maxTables. A nil or empty result with a nil error means the
// caller should render the full schema.
type Strategy interface {
	// Name is the registry key for this strategy.
	Name() string

	// Select maps (query, descriptors, budget) to an ordered table list.
	Select(ctx context.Context, query string, ds *catalog.DescriptorSet, maxTables int) ([]string, error)

	// Describe reports strategy metadata for the reporting surface.
	Describe() Info
}

// Info is human-facing strategy metadata.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	BestFor     string   `json:"best_for"`
}

// UnknownStrategyError is returned when an unregistered strategy name is
// requested by a surface that cannot degrade (the manager itself degrades
// to the keyword strategy instead of returning this).
type UnknownStrategyError struct {
	Name      string
	Available []string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown retrieval strategy %q (available: %v)", e.Name, e.Available)
}
