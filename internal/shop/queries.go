//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package shop

import (
	"fmt"
	"sort"
)

// QueryDefinition is a named analytic query over the shop schema.
type QueryDefinition struct {
	// Name is the query identifier.
	Name string

	// Description describes what the query answers.
	Description string

	// SQL is the statement text.
	SQL string
}

var queries = []QueryDefinition{
	{
		Name:        "customer_analytics",
		Description: "Orders, spend and review activity per customer",
		SQL: `SELECT c.customer_id, c.name, c.country,
       COUNT(DISTINCT o.order_id) AS total_orders,
       COALESCE(SUM(o.total_amount), 0) AS total_spend,
       ROUND(COALESCE(AVG(o.total_amount), 0), 2) AS avg_order_value,
       (SELECT COUNT(*) FROM reviews r WHERE r.customer_id = c.customer_id) AS reviews_written
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.customer_id
GROUP BY c.customer_id, c.name, c.country
ORDER BY total_spend DESC, c.customer_id`,
	},
	{
		Name:        "country_spend",
		Description: "Total orders and total spend per country",
		SQL: `SELECT c.country,
       COUNT(o.order_id) AS total_orders,
       SUM(o.total_amount) AS total_spend
FROM orders o
JOIN customers c ON c.customer_id = o.customer_id
GROUP BY c.country
ORDER BY total_spend DESC, c.country`,
	},
	{
		Name:        "top_rated_products",
		Description: "Products ranked by average review rating",
		SQL: `SELECT p.product_id, p.product_name, p.category,
       COUNT(r.review_id) AS review_count,
       ROUND(AVG(r.rating), 2) AS avg_rating
FROM products p
JOIN reviews r ON r.product_id = p.product_id
GROUP BY p.product_id, p.product_name, p.category
ORDER BY avg_rating DESC, review_count DESC, p.product_id
LIMIT 10`,
	},
	{
		Name:        "payment_status_summary",
		Description: "Transaction counts and order value by payment status",
		SQL: `SELECT t.payment_status,
       COUNT(*) AS transactions,
       SUM(o.total_amount) AS order_value
FROM transactions t
JOIN orders o ON o.order_id = t.order_id
GROUP BY t.payment_status
ORDER BY transactions DESC, t.payment_status`,
	},
	{
		Name:        "monthly_revenue",
		Description: "Order count and revenue per calendar month",
		SQL: `SELECT to_char(date_trunc('month', o.order_date), 'YYYY-MM') AS month,
       COUNT(*) AS orders,
       SUM(o.total_amount) AS revenue
FROM orders o
GROUP BY 1
ORDER BY 1`,
	},
}

// Queries returns the built-in queries sorted by name.
func Queries() []QueryDefinition {
	out := append([]QueryDefinition(nil), queries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetQuery returns the built-in query with the given name.
func GetQuery(name string) (QueryDefinition, error) {
	for _, q := range queries {
		if q.Name == name {
			return q, nil
		}
	}
	return QueryDefinition{}, fmt.Errorf("unknown query: %s", name)
}
