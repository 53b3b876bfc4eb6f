package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	ds := testDescriptors()

	out := Render(ds, []string{"orders", "customers"})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Available tables and columns:", lines[0])
	assert.Equal(t, "- orders: id, customer_id, status, total", lines[1])
	assert.Equal(t, "- customers: id, email, first_name, last_name", lines[2])
}

func TestRenderSkipsUnknownTables(t *testing.T) {
	ds := testDescriptors()

	out := Render(ds, []string{"orders", "no_such_table"})
	assert.Contains(t, out, "- orders:")
	assert.NotContains(t, out, "no_such_table")
}

func TestRenderEmptySelectionFallsBackToFull(t *testing.T) {
	ds := testDescriptors()

	full := RenderFull(ds)
	assert.Equal(t, full, Render(ds, nil))
	assert.Equal(t, full, Render(ds, []string{}))
	assert.Equal(t, full, Render(ds, []string{"no_such_table"}),
		"selection with only unknown tables renders the full schema")
}

func TestRenderFull(t *testing.T) {
	ds := testDescriptors()

	out := RenderFull(ds)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, ds.Len()+1, "one line per table plus header")
	for _, name := range ds.Names() {
		assert.Contains(t, out, "- "+name+": ")
	}
}
