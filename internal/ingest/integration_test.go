//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for schema creation and bulk loading.
// Run with: go test -tags=integration ./internal/ingest/...
// Requires PostgreSQL to be available.
// Set PGEDGE_TEST_CONN environment variable to override connection string.

package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-shopdata/internal/datagen"
	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/export"
	"github.com/pgEdge/pgedge-shopdata/internal/ingest"
	"github.com/pgEdge/pgedge-shopdata/internal/resource"
	"github.com/pgEdge/pgedge-shopdata/internal/shop"
	"github.com/pgEdge/pgedge-shopdata/internal/testutil"
)

func writeDataset(t *testing.T) (string, *shop.Dataset) {
	t.Helper()
	cfg := shop.DefaultGeneratorConfig()
	cfg.AsOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	gen, err := shop.NewGenerator(datagen.NewFakerWithSeed(42), cfg)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	ds, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	dir := t.TempDir()
	if _, err := export.WriteDataset(dir, ds); err != nil {
		t.Fatalf("WriteDataset failed: %v", err)
	}
	return dir, ds
}

func TestIngestEndToEnd(t *testing.T) {
	conn, _ := testutil.NewTestDB(t, "ingest")
	dir, ds := writeDataset(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	loader := ingest.NewLoader(conn, ingest.Config{DataDir: dir, BatchSize: 25})
	report, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Loaded() != len(shop.Tables) {
		t.Fatalf("Expected all tables loaded, got %+v", report.Tables)
	}

	counts := ds.Counts()
	for _, res := range report.Tables {
		if res.Rows != int64(counts[res.Table]) {
			t.Errorf("%s: stored %d rows, want %d", res.Table, res.Rows, counts[res.Table])
		}
	}

	// Every foreign key resolves
	orphanChecks := []string{
		`SELECT COUNT(*) FROM orders o LEFT JOIN customers c USING (customer_id) WHERE c.customer_id IS NULL`,
		`SELECT COUNT(*) FROM transactions t LEFT JOIN orders o USING (order_id) WHERE o.order_id IS NULL`,
		`SELECT COUNT(*) FROM reviews r LEFT JOIN products p USING (product_id) WHERE p.product_id IS NULL`,
	}
	for _, sql := range orphanChecks {
		var n int
		if err := conn.QueryRow(ctx, sql).Scan(&n); err != nil {
			t.Fatalf("Orphan check failed: %v", err)
		}
		if n != 0 {
			t.Errorf("Found %d orphaned rows: %s", n, sql)
		}
	}

	// Stored values match the generated ones
	var price float64
	var stock int
	p := ds.Products[0]
	err = conn.QueryRow(ctx, `SELECT price::float8, stock FROM products WHERE product_id = $1`, p.ID).
		Scan(&price, &stock)
	if err != nil {
		t.Fatalf("Failed to read product: %v", err)
	}
	if price != p.Price || stock != p.Stock {
		t.Errorf("Product %s stored as %.2f/%d, want %.2f/%d", p.ID, price, stock, p.Price, p.Stock)
	}

	// Metadata marks the store as ingested
	if probe := db.ProbeStore(ctx, conn); probe.State != resource.StateFound {
		t.Errorf("Expected store found, got %s", probe.Describe())
	}
	meta, err := db.GetAllMetadata(ctx, conn)
	if err != nil {
		t.Fatalf("GetAllMetadata failed: %v", err)
	}
	if meta[db.MetaRunID] != report.RunID {
		t.Errorf("Metadata run_id %s, want %s", meta[db.MetaRunID], report.RunID)
	}
	if meta["rows."+shop.TableReviews] != strconv.Itoa(counts[shop.TableReviews]) {
		t.Errorf("Metadata reviews count %s, want %d", meta["rows."+shop.TableReviews], counts[shop.TableReviews])
	}
}

func TestIngestRebuildsSchema(t *testing.T) {
	conn, _ := testutil.NewTestDB(t, "rebuild")
	dir, ds := writeDataset(t)
	ctx := context.Background()

	loader := ingest.NewLoader(conn, ingest.Config{DataDir: dir})
	first, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := loader.Run(ctx)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	// A second run replaces rather than appends
	for _, res := range second.Tables {
		if res.Rows != int64(ds.Counts()[res.Table]) {
			t.Errorf("%s: %d rows after second run, want %d", res.Table, res.Rows, ds.Counts()[res.Table])
		}
	}
	if first.RunID == second.RunID {
		t.Error("Expected a new run ID for each run")
	}
}

func TestIngestMissingFile(t *testing.T) {
	conn, _ := testutil.NewTestDB(t, "missing")
	dir, _ := writeDataset(t)
	ctx := context.Background()

	if err := os.Remove(filepath.Join(dir, "reviews.csv")); err != nil {
		t.Fatal(err)
	}

	report, err := ingest.NewLoader(conn, ingest.Config{DataDir: dir}).Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	res, _ := report.Result(shop.TableReviews)
	if res.Status != ingest.StatusSkipped {
		t.Errorf("Expected reviews skipped, got %s", res.Status)
	}
	if res.Rows != 0 {
		t.Errorf("Expected empty reviews table, got %d rows", res.Rows)
	}
	if report.Loaded() != len(shop.Tables)-1 {
		t.Errorf("Expected the other %d tables loaded, got %d", len(shop.Tables)-1, report.Loaded())
	}
}

func TestIngestConstraintViolation(t *testing.T) {
	conn, _ := testutil.NewTestDB(t, "violation")
	dir, ds := writeDataset(t)
	ctx := context.Background()

	// Point the first order at a customer that does not exist
	path := filepath.Join(dir, "orders.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	first := ds.Orders[0]
	broken := strings.Replace(string(data), first.ID+","+first.CustomerID, first.ID+",CUST9999", 1)
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := ingest.NewLoader(conn, ingest.Config{DataDir: dir}).Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	orders, _ := report.Result(shop.TableOrders)
	if orders.Status != ingest.StatusFailed {
		t.Fatalf("Expected orders to fail, got %s", orders.Status)
	}
	if orders.Rows != 0 {
		t.Errorf("Expected no orders stored, got %d", orders.Rows)
	}

	// Tables not depending on orders still load
	reviews, _ := report.Result(shop.TableReviews)
	if !reviews.OK() {
		t.Errorf("Expected reviews to load, got %s: %v", reviews.Status, reviews.Err)
	}
	transactions, _ := report.Result(shop.TableTransactions)
	if transactions.OK() {
		t.Error("Expected transactions to fail without their orders")
	}
}

func TestBuildSchemaIdempotent(t *testing.T) {
	conn, _ := testutil.NewTestDB(t, "schema")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := shop.BuildSchema(ctx, conn); err != nil {
			t.Fatalf("BuildSchema run %d failed: %v", i+1, err)
		}
	}
	for _, name := range shop.TableNames() {
		n, err := db.CountRows(ctx, conn, name)
		if err != nil {
			t.Errorf("Table %s missing: %v", name, err)
		}
		if n != 0 {
			t.Errorf("Table %s has %d rows, want 0", name, n)
		}
	}

	// The rating check is enforced
	_, err := conn.Exec(ctx, `INSERT INTO customers VALUES ('CUST0001', 'A', 'a@example.com', '2024-01-01', 'UK')`)
	if err != nil {
		t.Fatalf("Insert customer failed: %v", err)
	}
	_, err = conn.Exec(ctx, `INSERT INTO products VALUES ('PROD0001', 'Tea - Green', 'Food & Beverages', 5.00, 1)`)
	if err != nil {
		t.Fatalf("Insert product failed: %v", err)
	}
	_, err = conn.Exec(ctx, `INSERT INTO reviews VALUES ('REV00001', 'PROD0001', 'CUST0001', 6, 'x', '2024-01-02')`)
	if err == nil {
		t.Error("Expected rating 6 to be rejected")
	}

	if err := shop.DropSchema(ctx, conn); err != nil {
		t.Fatalf("DropSchema failed: %v", err)
	}
	if _, err := db.CountRows(ctx, conn, shop.TableCustomers); err == nil {
		t.Error("Expected customers to be dropped")
	}
}
