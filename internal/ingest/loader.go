//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ingest rebuilds the shop schema and bulk-loads exported CSV files
// into it.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-shopdata/internal/datagen"
	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
	"github.com/pgEdge/pgedge-shopdata/internal/resource"
	"github.com/pgEdge/pgedge-shopdata/internal/shop"
)

// DefaultBatchSize is the number of rows sent per COPY.
const DefaultBatchSize = 1000

// Status is the outcome of loading one table.
type Status int

const (
	// StatusLoaded means every row of the file was copied.
	StatusLoaded Status = iota
	// StatusSkipped means the data file was missing.
	StatusSkipped
	// StatusFailed means reading or copying the file failed.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// TableResult is the outcome of loading one table.
type TableResult struct {
	Table  string
	Path   string
	Status Status

	// Rows is the row count read back from the store after the load, or
	// -1 if it could not be read.
	Rows int64

	// Err is the reason a table was skipped or failed.
	Err error
}

// OK reports whether the table loaded successfully.
func (r TableResult) OK() bool {
	return r.Status == StatusLoaded
}

// Report summarises an ingestion run.
type Report struct {
	// RunID identifies the run in the store's metadata. It is empty if the
	// metadata could not be saved.
	RunID string

	// Tables holds one result per table in load order.
	Tables []TableResult
}

// Loaded returns the number of tables that loaded successfully.
func (r *Report) Loaded() int {
	n := 0
	for _, t := range r.Tables {
		if t.OK() {
			n++
		}
	}
	return n
}

// Result returns the result for table.
func (r *Report) Result(table string) (TableResult, bool) {
	for _, t := range r.Tables {
		if t.Table == table {
			return t, true
		}
	}
	return TableResult{}, false
}

// Config configures a Loader.
type Config struct {
	// DataDir holds the exported CSV files.
	DataDir string

	// BatchSize is the number of rows per COPY; DefaultBatchSize when zero.
	BatchSize int
}

// Loader rebuilds the schema and loads every table over one connection.
type Loader struct {
	conn db.DB
	cfg  Config
}

// NewLoader creates a loader using conn for every statement.
func NewLoader(conn db.DB, cfg Config) *Loader {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Loader{conn: conn, cfg: cfg}
}

// Run drops the previous ingestion, rebuilds the schema and loads each
// table parents first. Schema and metadata errors abort the run and are
// returned; per-table problems are recorded in the report and loading
// continues with the next table.
func (l *Loader) Run(ctx context.Context) (*Report, error) {
	if err := db.DropMetadata(ctx, l.conn); err != nil {
		return nil, fmt.Errorf("failed to drop metadata: %w", err)
	}
	if err := shop.BuildSchema(ctx, l.conn); err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	report := &Report{Tables: make([]TableResult, 0, len(shop.Tables))}
	counts := make(map[string]int64, len(shop.Tables))
	for _, t := range shop.Tables {
		res := l.LoadTable(ctx, t)
		report.Tables = append(report.Tables, res)
		if res.Rows >= 0 {
			counts[t.Name] = res.Rows
		}
	}

	runID, err := db.SaveMetadata(ctx, l.conn, db.IngestRecord{
		DataDir:   l.cfg.DataDir,
		RowCounts: counts,
	})
	if err != nil {
		return report, fmt.Errorf("failed to save metadata: %w", err)
	}
	report.RunID = runID

	logging.Info().
		Str("run_id", runID).
		Int("loaded", report.Loaded()).
		Int("tables", len(report.Tables)).
		Msg("Ingestion complete")

	return report, nil
}

// LoadTable appends the rows of t's data file to the (empty) table and
// reads the resulting row count back from the store.
func (l *Loader) LoadTable(ctx context.Context, t shop.Table) TableResult {
	path := filepath.Join(l.cfg.DataDir, t.File)
	res := TableResult{Table: t.Name, Path: path, Rows: -1}

	check := resource.Check(path)
	switch check.State {
	case resource.StateMissing:
		res.Status = StatusSkipped
		res.Err = fmt.Errorf("file not found: %s", path)
		logging.Warn().
			Str("table", t.Name).
			Str("path", path).
			Msg("Data file not found, skipping table")
		return l.readBack(ctx, res)
	case resource.StateFailed:
		return l.fail(ctx, res, check.Err)
	}

	rows, err := ReadTable(path, t)
	if err != nil {
		return l.fail(ctx, res, err)
	}

	if err := l.copyRows(ctx, t, rows); err != nil {
		return l.fail(ctx, res, err)
	}

	res.Status = StatusLoaded
	res = l.readBack(ctx, res)
	if res.Err != nil {
		res.Status = StatusFailed
		return res
	}

	logging.Table(t.Name).
		Int("file_rows", len(rows)).
		Int64("stored_rows", res.Rows).
		Msg("Table loaded")
	return res
}

func (l *Loader) copyRows(ctx context.Context, t shop.Table, rows [][]any) error {
	columns := t.ColumnNames()
	progress := datagen.NewProgressReporter(t.Name, "load", int64(len(rows)), int64(l.cfg.BatchSize))

	for start := 0; start < len(rows); start += l.cfg.BatchSize {
		end := min(start+l.cfg.BatchSize, len(rows))
		n, err := l.conn.CopyFrom(ctx, pgx.Identifier{t.Name}, columns, pgx.CopyFromRows(rows[start:end]))
		if err != nil {
			return fmt.Errorf("copy into %s (rows %d-%d): %w", t.Name, start+1, end, err)
		}
		progress.Update(n)
	}
	progress.Done()
	return nil
}

// readBack fills in the stored row count. A count failure on an otherwise
// successful load is recorded as the result's error.
func (l *Loader) readBack(ctx context.Context, res TableResult) TableResult {
	n, err := db.CountRows(ctx, l.conn, res.Table)
	if err != nil {
		if res.Err == nil {
			res.Err = err
		}
		return res
	}
	res.Rows = n
	return res
}

func (l *Loader) fail(ctx context.Context, res TableResult, err error) TableResult {
	res.Status = StatusFailed
	res.Err = err
	logging.Error().
		Err(err).
		Str("table", res.Table).
		Str("path", res.Path).
		Msg("Failed to load table")
	return l.readBack(ctx, res)
}

// ReadTable reads and decodes a data file for t. The header must name t's
// columns in order; any malformed record fails the whole file with its line
// number so nothing is loaded from it.
func ReadTable(path string, t shop.Table) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(t.Columns)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.CheckHeader(header); err != nil {
		return nil, err
	}

	var rows [][]any
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		values, err := t.Decode(record)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		rows = append(rows, values)
	}
	return rows, nil
}
