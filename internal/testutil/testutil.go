// Package testutil provides shared fixtures for retrieval tests.
package testutil

import (
	"log/slog"
	"testing"

	"github.com/leapstack-labs/schemascope/internal/adapter"
)

// Logger returns a logger that writes through t.Log so failures carry the
// relevant log lines.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// Snapshot builds a small e-commerce schema snapshot without touching a
// database.
func Snapshot() *adapter.Snapshot {
	id := func(name string) adapter.Column {
		return adapter.Column{Name: name, Type: "INTEGER", PrimaryKey: name == "id", Position: 1}
	}
	text := func(name string, pos int) adapter.Column {
		return adapter.Column{Name: name, Type: "TEXT", Position: pos}
	}

	return &adapter.Snapshot{Tables: []adapter.Table{
		{
			Name:    "brands",
			Columns: []adapter.Column{id("id"), text("name", 2), text("country", 3)},
		},
		{
			Name:    "customers",
			Columns: []adapter.Column{id("id"), text("email", 2), text("first_name", 3), text("last_name", 4)},
		},
		{
			Name: "order_items",
			Columns: []adapter.Column{
				id("id"), id("order_id"), id("variant_id"),
				{Name: "quantity", Type: "INTEGER", Position: 4},
				{Name: "unit_price", Type: "REAL", Position: 5},
			},
			ForeignKeys: []adapter.ForeignKey{
				{Column: "order_id", ReferencesTable: "orders", ReferencesColumn: "id"},
				{Column: "variant_id", ReferencesTable: "product_variants", ReferencesColumn: "id"},
			},
		},
		{
			Name: "orders",
			Columns: []adapter.Column{
				id("id"), id("customer_id"), text("status", 3),
				{Name: "total", Type: "REAL", Position: 4},
			},
			ForeignKeys: []adapter.ForeignKey{
				{Column: "customer_id", ReferencesTable: "customers", ReferencesColumn: "id"},
			},
		},
		{
			Name: "product_variants",
			Columns: []adapter.Column{
				id("id"), id("product_id"), text("sku", 3), text("color", 4),
			},
			ForeignKeys: []adapter.ForeignKey{
				{Column: "product_id", ReferencesTable: "products", ReferencesColumn: "id"},
			},
		},
		{
			Name: "products",
			Columns: []adapter.Column{
				id("id"), id("brand_id"), text("name", 3),
				{Name: "price", Type: "REAL", Position: 4},
			},
			ForeignKeys: []adapter.ForeignKey{
				{Column: "brand_id", ReferencesTable: "brands", ReferencesColumn: "id"},
			},
		},
		{
			Name:    "reviews",
			Columns: []adapter.Column{id("id"), id("product_id"), id("customer_id"), {Name: "rating", Type: "INTEGER", Position: 4}},
			ForeignKeys: []adapter.ForeignKey{
				{Column: "product_id", ReferencesTable: "products", ReferencesColumn: "id"},
				{Column: "customer_id", ReferencesTable: "customers", ReferencesColumn: "id"},
			},
		},
		{
			Name:    "shipments",
			Columns: []adapter.Column{id("id"), id("order_id"), text("carrier", 3), text("status", 4)},
			ForeignKeys: []adapter.ForeignKey{
				{Column: "order_id", ReferencesTable: "orders", ReferencesColumn: "id"},
			},
		},
	}}
}
