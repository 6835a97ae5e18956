package shop

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
)

// Drop schema SQL, children before parents.
const dropSchemaSQL = `
DROP TABLE IF EXISTS reviews;
DROP TABLE IF EXISTS transactions;
DROP TABLE IF EXISTS orders;
DROP TABLE IF EXISTS products;
DROP TABLE IF EXISTS customers;
`

// Schema SQL, parents before children.
const createSchemaSQL = `
-- Customers: registered shoppers
CREATE TABLE customers (
    customer_id  TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    email        TEXT NOT NULL,
    signup_date  DATE NOT NULL,
    country      TEXT NOT NULL
);

-- Products: catalog items
CREATE TABLE products (
    product_id    TEXT PRIMARY KEY,
    product_name  TEXT NOT NULL,
    category      TEXT NOT NULL,
    price         NUMERIC(10,2) NOT NULL,
    stock         INTEGER NOT NULL
);

-- Orders: order headers
CREATE TABLE orders (
    order_id      TEXT PRIMARY KEY,
    customer_id   TEXT NOT NULL REFERENCES customers(customer_id),
    order_date    DATE NOT NULL,
    total_amount  NUMERIC(10,2) NOT NULL
);

-- Transactions: payment attempts
CREATE TABLE transactions (
    transaction_id  TEXT PRIMARY KEY,
    order_id        TEXT NOT NULL REFERENCES orders(order_id),
    payment_method  TEXT NOT NULL,
    payment_status  TEXT NOT NULL
);

-- Reviews: product ratings
CREATE TABLE reviews (
    review_id    TEXT PRIMARY KEY,
    product_id   TEXT NOT NULL REFERENCES products(product_id),
    customer_id  TEXT NOT NULL REFERENCES customers(customer_id),
    rating       INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
    review_text  TEXT NOT NULL,
    review_date  DATE NOT NULL
);
`

// BuildSchema drops and recreates every table in a single transaction and
// commits before returning. Running it repeatedly always leaves the same
// empty schema. On error nothing is committed.
func BuildSchema(ctx context.Context, conn db.DB) error {
	return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, dropSchemaSQL); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
		if _, err := tx.Exec(ctx, createSchemaSQL); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
		logging.Info().
			Strs("tables", TableNames()).
			Msg("Schema created")
		return nil
	})
}

// DropSchema drops every table.
func DropSchema(ctx context.Context, conn db.DB) error {
	_, err := conn.Exec(ctx, dropSchemaSQL)
	return err
}
