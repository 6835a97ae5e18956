//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/export"
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
	"github.com/pgEdge/pgedge-shopdata/internal/resource"
)

// ErrStoreNotIngested is returned when the store has no completed
// ingestion to query.
var ErrStoreNotIngested = errors.New("store has not been ingested; run 'pgedge-shopdata ingest' first")

// Result is a fully materialised result set. Values are PostgreSQL's text
// rendering of each column; NULL becomes an empty string.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Runner executes queries over a single connection.
type Runner struct {
	conn db.DB
}

// NewRunner creates a runner using conn.
func NewRunner(conn db.DB) *Runner {
	return &Runner{conn: conn}
}

// CheckStore fails unless the store holds a completed ingestion.
func (r *Runner) CheckStore(ctx context.Context) error {
	probe := db.ProbeStore(ctx, r.conn)
	switch probe.State {
	case resource.StateMissing:
		return ErrStoreNotIngested
	case resource.StateFailed:
		return probe.Err
	}
	return nil
}

// Run checks the store, executes sql and writes the full result to output
// as CSV. The result is returned for previewing.
func (r *Runner) Run(ctx context.Context, sql, output string) (*Result, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, ErrEmptyQuery
	}
	if err := r.CheckStore(ctx); err != nil {
		return nil, err
	}

	res, err := r.Execute(ctx, sql)
	if err != nil {
		return nil, err
	}

	if err := export.WriteTable(output, res.Columns, res.Rows); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}
	return res, nil
}

// Execute runs sql and collects every row. The simple protocol is used so
// every value arrives as PostgreSQL's own text rendering and is exported
// without reformatting.
func (r *Runner) Execute(ctx context.Context, sql string) (*Result, error) {
	start := time.Now()

	rows, err := r.conn.Query(ctx, sql, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := &Result{}
	for _, fd := range rows.FieldDescriptions() {
		res.Columns = append(res.Columns, fd.Name)
	}

	for rows.Next() {
		raw := rows.RawValues()
		row := make([]string, len(raw))
		for i, v := range raw {
			if v != nil {
				row[i] = string(v)
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logging.Info().
		Int("rows", len(res.Rows)).
		Int("columns", len(res.Columns)).
		Dur("duration", time.Since(start)).
		Msg("Query executed")

	return res, nil
}

// Preview writes the first n rows of res as an aligned table.
func Preview(w io.Writer, res *Result, n int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))
	dashes := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		dashes[i] = strings.Repeat("-", max(len(c), 3))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for i, row := range res.Rows {
		if i >= n {
			break
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Failure classes reported by Describe.
const (
	FailureDatabase    = "Database error"
	FailureNotFound    = "File not found"
	FailureNotIngested = "Store not ingested"
	FailureOther       = "Unexpected error"
)

// Describe classifies a query failure so each kind can be reported
// distinctly.
func Describe(err error) (class string, detail string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, ErrStoreNotIngested):
		return FailureNotIngested, err.Error()
	case errors.As(err, &pgErr):
		return FailureDatabase, fmt.Sprintf("%s (SQLSTATE %s)", pgErr.Message, pgErr.Code)
	case errors.Is(err, fs.ErrNotExist):
		return FailureNotFound, err.Error()
	default:
		return FailureOther, err.Error()
	}
}
