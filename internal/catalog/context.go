package catalog

import (
	"fmt"
	"strings"
)

// businessContexts is the curated per-table purpose text for the e-commerce
// domain. Tables absent from the map get a generic fallback.
var businessContexts = map[string]string{
	"products":             "Product catalog with items, prices, categories, and brand information. Core inventory data.",
	"product_variants":     "Product variations like colors, sizes, SKUs. Links products to specific sellable items.",
	"customers":            "Customer profiles with personal information, contact details, and account status.",
	"orders":               "Purchase transactions with totals, dates, status, and customer relationships.",
	"order_items":          "Individual line items within orders. Contains quantities, prices, and product references.",
	"payments":             "Payment processing records with methods, amounts, and transaction status.",
	"inventory":            "Stock levels and warehouse quantities for product variants.",
	"reviews":              "Customer feedback, ratings, and product reviews.",
	"suppliers":            "Vendor information for procurement and supply chain management.",
	"categories":           "Product categorization hierarchy for organizing catalog.",
	"brands":               "Brand information for products and marketing purposes.",
	"addresses":            "Customer shipping and billing address information.",
	"shipments":            "Delivery tracking and shipping status information.",
	"discounts":            "Promotional codes, coupons, and discount campaigns.",
	"warehouses":           "Storage facility locations and warehouse management.",
	"employees":            "Staff information and organizational structure.",
	"departments":          "Organizational divisions and team structure.",
	"product_images":       "Product photography and media assets.",
	"purchase_orders":      "Procurement orders from suppliers.",
	"purchase_order_items": "Line items for supplier purchase orders.",
	"order_discounts":      "Applied discounts and promotions on orders.",
	"shipment_items":       "Individual items within shipment packages.",
}

// useCases is the curated per-table example-query text.
var useCases = map[string]string{
	"products":    "product searches, catalog listings, price queries, inventory checks",
	"customers":   "customer lookup, registration analysis, geographic distribution",
	"orders":      "sales analysis, revenue tracking, order history, status monitoring",
	"order_items": "product sales performance, revenue by product, order composition",
	"payments":    "payment processing, revenue reconciliation, payment method analysis",
	"brands":      "brand performance, sales by brand, brand comparison",
	"categories":  "category analysis, product organization, catalog structure",
}

// tableKeywords maps table names to curated domain keywords for the
// keyword-scored strategy. Curated, not derived from data.
var tableKeywords = map[string][]string{
	"products":             {"product", "item", "catalog", "price", "category", "brand", "sales", "sold"},
	"product_variants":     {"variant", "product", "sku", "color", "size", "brand", "sales", "sold"},
	"customers":            {"customer", "user", "client", "buyer", "person", "email", "name"},
	"orders":               {"order", "purchase", "transaction", "sale", "buy", "total", "amount", "sales"},
	"order_items":          {"item", "product", "quantity", "line", "detail", "sales", "sold", "brand"},
	"payments":             {"payment", "pay", "money", "revenue", "amount"},
	"inventory":            {"inventory", "stock", "quantity", "warehouse", "available"},
	"reviews":              {"review", "rating", "feedback", "comment", "opinion"},
	"suppliers":            {"supplier", "vendor", "procurement", "purchase"},
	"categories":           {"category", "type", "classification", "group"},
	"brands":               {"brand", "manufacturer", "company", "sales", "sold", "quantity", "total"},
	"addresses":            {"address", "location", "shipping", "billing"},
	"shipments":            {"shipment", "delivery", "shipping", "tracking"},
	"discounts":            {"discount", "coupon", "promotion", "offer"},
	"warehouses":           {"warehouse", "facility", "location", "storage"},
	"employees":            {"employee", "staff", "worker", "person"},
	"departments":          {"department", "division", "team"},
	"product_images":       {"image", "photo", "picture", "media"},
	"purchase_orders":      {"purchase", "procurement", "supplier", "order"},
	"purchase_order_items": {"purchase", "procurement", "supplier", "item"},
	"order_discounts":      {"discount", "coupon", "promotion", "order"},
	"shipment_items":       {"shipment", "delivery", "item", "tracking"},
}

// BusinessContext returns the curated purpose text for a table, or a
// generic fallback for tables outside the catalog.
func BusinessContext(table string) string {
	if ctx, ok := businessContexts[table]; ok {
		return ctx
	}
	return fmt.Sprintf("Database table for %s related operations.", table)
}

// UseCases returns the curated example-query text for a table, or a
// generic fallback.
func UseCases(table string) string {
	if uc, ok := useCases[table]; ok {
		return uc
	}
	return "general data queries and analysis"
}

// Keywords returns the curated domain keywords for a table. Tables outside
// the catalog get keywords derived from the table name's words, so unseen
// schemas still score on name overlap.
func Keywords(table string) []string {
	if kws, ok := tableKeywords[table]; ok {
		return kws
	}
	return strings.Split(table, "_")
}
