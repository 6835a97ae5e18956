//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export writes generated tables and query results as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgEdge/pgedge-shopdata/internal/logging"
	"github.com/pgEdge/pgedge-shopdata/internal/shop"
)

// Written describes one exported file.
type Written struct {
	Table string
	Path  string
	Rows  int
}

// WriteDataset writes every table of ds into dir, creating dir if needed.
// Existing files are overwritten.
func WriteDataset(dir string, ds *shop.Dataset) ([]Written, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	written := make([]Written, 0, len(shop.Tables))
	for _, t := range shop.Tables {
		path := filepath.Join(dir, t.File)
		rows := ds.Rows(t.Name)
		if err := WriteTable(path, t.ColumnNames(), rows); err != nil {
			return written, fmt.Errorf("failed to export %s: %w", t.Name, err)
		}

		logging.Debug().
			Str("table", t.Name).
			Str("path", path).
			Int("rows", len(rows)).
			Msg("Exported table")

		written = append(written, Written{Table: t.Name, Path: path, Rows: len(rows)})
	}
	return written, nil
}

// WriteTable writes a header and rows to path, creating the parent
// directory if needed and truncating any existing file.
func WriteTable(path string, header []string, rows [][]string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}
