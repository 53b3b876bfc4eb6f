package retrieval

import (
	"strings"

	"github.com/leapstack-labs/schemascope/internal/catalog"
)

// fallbackBucket maps trigger words to a canonical table list for queries
// where relevance scoring found nothing.
type fallbackBucket struct {
	triggers []string
	tables   []string
}

// Buckets are checked in order; the first with a trigger present in the
// query wins. The last bucket has no triggers and always matches.
var fallbackBuckets = []fallbackBucket{
	{
		triggers: []string{"revenue", "sales", "total", "amount", "brand"},
		tables:   []string{"orders", "order_items", "product_variants", "products", "brands"},
	},
	{
		triggers: []string{"product", "item", "catalog"},
		tables:   []string{"products", "product_variants", "categories", "brands"},
	},
	{
		triggers: []string{"customer", "user", "buyer"},
		tables:   []string{"customers", "orders", "addresses"},
	},
	{
		tables: []string{"products", "customers", "orders", "order_items"},
	},
}

// fallbackTables picks the bucket matching the query, drops tables absent
// from the descriptor set, and truncates to maxTables.
func fallbackTables(query string, ds *catalog.DescriptorSet, maxTables int) []string {
	lower := strings.ToLower(query)
	for _, b := range fallbackBuckets {
		if len(b.triggers) > 0 && !containsAny(lower, b.triggers) {
			continue
		}
		out := make([]string, 0, len(b.tables))
		for _, t := range b.tables {
			if _, ok := ds.Get(t); ok {
				out = append(out, t)
			}
		}
		if len(out) > maxTables {
			out = out[:maxTables]
		}
		return out
	}
	return nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
