package retrieval

import (
	"strings"

	"github.com/leapstack-labs/schemascope/internal/catalog"
)

const schemaHeader = "Available tables and columns:"

// Render produces the compact schema text for the named tables, in order.
// Names not present in the descriptor set are skipped. An empty selection
// renders the full schema so the output is never unusable.
func Render(ds *catalog.DescriptorSet, tables []string) string {
	if len(tables) == 0 {
		return RenderFull(ds)
	}
	out, rendered := renderTables(ds, tables)
	if rendered == 0 {
		return RenderFull(ds)
	}
	return out
}

// RenderFull renders every table in the descriptor set's name order.
func RenderFull(ds *catalog.DescriptorSet) string {
	out, _ := renderTables(ds, ds.Names())
	return out
}

func renderTables(ds *catalog.DescriptorSet, tables []string) (string, int) {
	var b strings.Builder
	b.WriteString(schemaHeader)
	rendered := 0
	for _, name := range tables {
		td, ok := ds.Get(name)
		if !ok {
			continue
		}
		b.WriteString("\n- ")
		b.WriteString(td.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(td.ColumnNames(), ", "))
		rendered++
	}
	return b.String(), rendered
}
