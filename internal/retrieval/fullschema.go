package retrieval

import (
	"context"

	"github.com/leapstack-labs/schemascope/internal/catalog"
)

// FullSchemaStrategy selects every table. It is the zero-intelligence
// baseline the comparison harness measures reductions against.
type FullSchemaStrategy struct{}

func NewFullSchemaStrategy() *FullSchemaStrategy { return &FullSchemaStrategy{} }

func (s *FullSchemaStrategy) Name() string { return "full-schema" }

// Select ignores the query and the budget and returns all table names.
func (s *FullSchemaStrategy) Select(_ context.Context, _ string, ds *catalog.DescriptorSet, _ int) ([]string, error) {
	return ds.Names(), nil
}

func (s *FullSchemaStrategy) Describe() Info {
	return Info{
		Name:        "full-schema",
		Description: "Returns every table unconditionally.",
		Pros:        []string{"never misses a relevant table", "zero retrieval cost"},
		Cons:        []string{"no context reduction", "scales linearly with schema size"},
		BestFor:     "small schemas or as a correctness baseline",
	}
}

var _ Strategy = (*FullSchemaStrategy)(nil)
