package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemascope/internal/adapter"
)

func TestApply(t *testing.T) {
	a := adapter.NewSQLiteAdapter()
	require.NoError(t, a.Connect(context.Background(), adapter.Config{Type: "sqlite"}))
	defer func() { _ = a.Close() }()

	require.NoError(t, Apply(context.Background(), a, true))

	snap, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Tables, TableCount())

	names := snap.TableNames()
	for _, want := range []string{"brands", "customers", "orders", "order_items", "products", "shipment_items"} {
		assert.Contains(t, names, want)
	}

	// Foreign keys survive introspection.
	for _, tbl := range snap.Tables {
		if tbl.Name == "order_items" {
			assert.Len(t, tbl.ForeignKeys, 2)
		}
	}
}

func TestApplyIdempotentDDL(t *testing.T) {
	a := adapter.NewSQLiteAdapter()
	require.NoError(t, a.Connect(context.Background(), adapter.Config{Type: "sqlite"}))
	defer func() { _ = a.Close() }()

	require.NoError(t, Apply(context.Background(), a, false))
	require.NoError(t, Apply(context.Background(), a, false), "schema creation is idempotent")

	snap, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Tables, TableCount())
}
