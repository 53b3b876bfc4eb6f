// Package seed provisions the demo e-commerce schema used for trying out
// retrieval strategies without pointing at a real database.
package seed

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/schemascope/internal/adapter"
)

// ddl creates the demo schema. Statements are ordered so foreign key
// targets exist before their referrers. The SQL sticks to types both
// SQLite and DuckDB accept.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		country TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id INTEGER REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		contact_email TEXT,
		phone TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS warehouses (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT,
		capacity INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS departments (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		department_id INTEGER REFERENCES departments(id),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		hired_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		category_id INTEGER REFERENCES categories(id),
		brand_id INTEGER REFERENCES brands(id),
		name TEXT NOT NULL,
		description TEXT,
		price REAL NOT NULL,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS product_variants (
		id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES products(id),
		sku TEXT NOT NULL,
		color TEXT,
		size TEXT,
		price REAL
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES products(id),
		url TEXT NOT NULL,
		alt_text TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id INTEGER PRIMARY KEY,
		variant_id INTEGER NOT NULL REFERENCES product_variants(id),
		warehouse_id INTEGER NOT NULL REFERENCES warehouses(id),
		quantity INTEGER NOT NULL,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY,
		email TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		status TEXT,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id INTEGER PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		kind TEXT,
		street TEXT,
		city TEXT,
		postal_code TEXT,
		country TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		status TEXT NOT NULL,
		total REAL NOT NULL,
		ordered_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id),
		variant_id INTEGER NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id),
		method TEXT NOT NULL,
		amount REAL NOT NULL,
		status TEXT,
		paid_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES products(id),
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		rating INTEGER NOT NULL,
		comment TEXT,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS discounts (
		id INTEGER PRIMARY KEY,
		code TEXT NOT NULL,
		percent_off REAL,
		valid_until TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS order_discounts (
		id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id),
		discount_id INTEGER NOT NULL REFERENCES discounts(id),
		amount REAL
	)`,
	`CREATE TABLE IF NOT EXISTS shipments (
		id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id),
		carrier TEXT,
		tracking_number TEXT,
		status TEXT,
		shipped_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS shipment_items (
		id INTEGER PRIMARY KEY,
		shipment_id INTEGER NOT NULL REFERENCES shipments(id),
		order_item_id INTEGER NOT NULL REFERENCES order_items(id),
		quantity INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id INTEGER PRIMARY KEY,
		supplier_id INTEGER NOT NULL REFERENCES suppliers(id),
		status TEXT,
		ordered_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_order_items (
		id INTEGER PRIMARY KEY,
		purchase_order_id INTEGER NOT NULL REFERENCES purchase_orders(id),
		variant_id INTEGER NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL,
		unit_cost REAL
	)`,
}

// sample rows make the demo queryable, not representative.
var sample = []string{
	`INSERT INTO brands (id, name, country) VALUES
		(1, 'Northwind', 'US'), (2, 'Alpenglow', 'DE'), (3, 'Kaizen', 'JP')`,
	`INSERT INTO categories (id, name, parent_id) VALUES
		(1, 'Apparel', NULL), (2, 'Footwear', 1), (3, 'Electronics', NULL)`,
	`INSERT INTO suppliers (id, name, contact_email, phone) VALUES
		(1, 'Acme Wholesale', 'sales@acme.test', '555-0100')`,
	`INSERT INTO warehouses (id, name, city, capacity) VALUES
		(1, 'Central', 'Chicago', 50000)`,
	`INSERT INTO departments (id, name) VALUES (1, 'Operations'), (2, 'Support')`,
	`INSERT INTO employees (id, department_id, first_name, last_name, hired_at) VALUES
		(1, 1, 'Dana', 'Reyes', '2023-04-01')`,
	`INSERT INTO products (id, category_id, brand_id, name, description, price, created_at) VALUES
		(1, 2, 1, 'Trail Runner', 'Lightweight trail shoe', 129.00, '2024-01-15'),
		(2, 3, 3, 'Noise Buds', 'Wireless earbuds', 89.00, '2024-02-20'),
		(3, 1, 2, 'Summit Jacket', 'Insulated shell', 249.00, '2024-03-05')`,
	`INSERT INTO product_variants (id, product_id, sku, color, size, price) VALUES
		(1, 1, 'TR-BLK-42', 'black', '42', 129.00),
		(2, 1, 'TR-RED-43', 'red', '43', 129.00),
		(3, 2, 'NB-WHT', 'white', NULL, 89.00),
		(4, 3, 'SJ-NVY-M', 'navy', 'M', 249.00)`,
	`INSERT INTO inventory (id, variant_id, warehouse_id, quantity, updated_at) VALUES
		(1, 1, 1, 120, '2024-06-01'), (2, 2, 1, 45, '2024-06-01'),
		(3, 3, 1, 300, '2024-06-01'), (4, 4, 1, 18, '2024-06-01')`,
	`INSERT INTO customers (id, email, first_name, last_name, status, created_at) VALUES
		(1, 'ava@example.test', 'Ava', 'Lin', 'active', '2023-11-02'),
		(2, 'sam@example.test', 'Sam', 'Ortiz', 'active', '2024-01-19')`,
	`INSERT INTO addresses (id, customer_id, kind, street, city, postal_code, country) VALUES
		(1, 1, 'shipping', '12 Elm St', 'Portland', '97201', 'US'),
		(2, 2, 'billing', '8 Oak Ave', 'Austin', '78701', 'US')`,
	`INSERT INTO orders (id, customer_id, status, total, ordered_at) VALUES
		(1, 1, 'delivered', 218.00, '2024-05-10'),
		(2, 2, 'shipped', 249.00, '2024-05-28')`,
	`INSERT INTO order_items (id, order_id, variant_id, quantity, unit_price) VALUES
		(1, 1, 1, 1, 129.00), (2, 1, 3, 1, 89.00), (3, 2, 4, 1, 249.00)`,
	`INSERT INTO payments (id, order_id, method, amount, status, paid_at) VALUES
		(1, 1, 'card', 218.00, 'settled', '2024-05-10'),
		(2, 2, 'card', 249.00, 'settled', '2024-05-28')`,
	`INSERT INTO reviews (id, product_id, customer_id, rating, comment, created_at) VALUES
		(1, 1, 1, 5, 'Great grip on wet rock.', '2024-05-20')`,
	`INSERT INTO discounts (id, code, percent_off, valid_until) VALUES
		(1, 'SPRING10', 10.0, '2024-06-30')`,
	`INSERT INTO shipments (id, order_id, carrier, tracking_number, status, shipped_at) VALUES
		(1, 1, 'UPS', '1Z999', 'delivered', '2024-05-11'),
		(2, 2, 'FedEx', 'FX123', 'in_transit', '2024-05-29')`,
	`INSERT INTO shipment_items (id, shipment_id, order_item_id, quantity) VALUES
		(1, 1, 1, 1), (2, 1, 2, 1), (3, 2, 3, 1)`,
	`INSERT INTO purchase_orders (id, supplier_id, status, ordered_at) VALUES
		(1, 1, 'received', '2024-04-01')`,
	`INSERT INTO purchase_order_items (id, purchase_order_id, variant_id, quantity, unit_cost) VALUES
		(1, 1, 1, 200, 61.00), (2, 1, 3, 500, 32.00)`,
}

// Apply creates the demo schema on the connected target.
func Apply(ctx context.Context, a adapter.Adapter, withData bool) error {
	for _, stmt := range ddl {
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create demo schema: %w", err)
		}
	}
	if !withData {
		return nil
	}
	for _, stmt := range sample {
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to load demo data: %w", err)
		}
	}
	return nil
}

// TableCount reports how many tables the demo schema creates.
func TableCount() int { return len(ddl) }
