package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectSQLite(t *testing.T) *SQLiteAdapter {
	t.Helper()

	a := NewSQLiteAdapter()
	require.NoError(t, a.Connect(context.Background(), Config{Type: "sqlite"}))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSQLiteSnapshot(t *testing.T) {
	a := connectSQLite(t)
	ctx := context.Background()

	require.NoError(t, a.Exec(ctx, `CREATE TABLE customers (
		id INTEGER PRIMARY KEY,
		email TEXT NOT NULL,
		name TEXT
	)`))
	require.NoError(t, a.Exec(ctx, `CREATE TABLE orders (
		id INTEGER PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		total REAL
	)`))

	snap, err := a.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"customers", "orders"}, snap.TableNames(), "tables are sorted by name")

	customers := snap.Tables[0]
	require.Len(t, customers.Columns, 3)
	assert.Equal(t, "id", customers.Columns[0].Name)
	assert.True(t, customers.Columns[0].PrimaryKey)
	assert.False(t, customers.Columns[1].PrimaryKey)
	assert.Equal(t, 1, customers.Columns[0].Position)

	orders := snap.Tables[1]
	require.Len(t, orders.ForeignKeys, 1)
	assert.Equal(t, ForeignKey{
		Column:           "customer_id",
		ReferencesTable:  "customers",
		ReferencesColumn: "id",
	}, orders.ForeignKeys[0])
}

func TestSQLiteSnapshotImplicitFKColumn(t *testing.T) {
	a := connectSQLite(t)
	ctx := context.Background()

	require.NoError(t, a.Exec(ctx, `CREATE TABLE parents (id INTEGER PRIMARY KEY, name TEXT)`))
	require.NoError(t, a.Exec(ctx, `CREATE TABLE children (
		id INTEGER PRIMARY KEY,
		parent_id INTEGER REFERENCES parents
	)`))

	snap, err := a.Snapshot(ctx)
	require.NoError(t, err)

	var children *Table
	for i := range snap.Tables {
		if snap.Tables[i].Name == "children" {
			children = &snap.Tables[i]
		}
	}
	require.NotNil(t, children)
	require.Len(t, children.ForeignKeys, 1)
	assert.Equal(t, "id", children.ForeignKeys[0].ReferencesColumn,
		"implicit references resolve to the id column")
}

func TestSQLiteSnapshotEmptyDatabase(t *testing.T) {
	a := connectSQLite(t)

	snap, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tables)
}

func TestSQLiteNotConnected(t *testing.T) {
	a := NewSQLiteAdapter()

	_, err := a.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)

	err = a.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrNotConnected)
}
