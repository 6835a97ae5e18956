//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-shopdata/internal/logging"
	"github.com/pgEdge/pgedge-shopdata/internal/resource"
	"github.com/pgEdge/pgedge-shopdata/pkg/version"
)

const metadataTable = "shopdata_metadata"

// Metadata keys.
const (
	MetaRunID    = "run_id"
	MetaVersion  = "version"
	MetaLoadedAt = "loaded_at"
	MetaDataDir  = "data_dir"

	// metaRowsPrefix prefixes per-table row counts, e.g. "rows.orders".
	metaRowsPrefix = "rows."
)

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS shopdata_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// IngestRecord describes a completed ingestion run.
type IngestRecord struct {
	DataDir   string
	RowCounts map[string]int64
}

// SaveMetadata records an ingestion run and returns its generated run ID.
func SaveMetadata(ctx context.Context, conn DB, rec IngestRecord) (string, error) {
	// Create table if it doesn't exist
	if _, err := conn.Exec(ctx, createMetadataTableSQL); err != nil {
		return "", fmt.Errorf("failed to create metadata table: %w", err)
	}

	runID := uuid.NewString()
	metadata := map[string]string{
		MetaRunID:    runID,
		MetaVersion:  version.Short(),
		MetaLoadedAt: time.Now().UTC().Format(time.RFC3339),
		MetaDataDir:  rec.DataDir,
	}
	for table, n := range rec.RowCounts {
		metadata[metaRowsPrefix+table] = fmt.Sprintf("%d", n)
	}

	// Insert in key order so runs are easy to compare in logs
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		_, err := conn.Exec(ctx, `
            INSERT INTO shopdata_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, metadata[key])
		if err != nil {
			return "", fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("run_id", runID).
		Str("data_dir", rec.DataDir).
		Msg("Saved metadata")

	return runID, nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, conn DB, key string) (string, error) {
	var value string
	err := conn.QueryRow(ctx, `
        SELECT value FROM shopdata_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, conn DB) (map[string]string, error) {
	rows, err := conn.Query(ctx, `SELECT key, value FROM shopdata_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, conn DB) error {
	_, err := conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, conn DB) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_schema = current_schema() AND table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}

// ProbeStore reports whether the store holds a completed ingestion. The
// store counts as missing until an ingestion run has recorded its metadata.
func ProbeStore(ctx context.Context, conn DB) resource.Result {
	const name = "store"

	exists, err := MetadataExists(ctx, conn)
	if err != nil {
		return resource.Failed(name, fmt.Errorf("failed to inspect store: %w", err))
	}
	if !exists {
		return resource.Missing(name)
	}

	if _, err := GetMetadataValue(ctx, conn, MetaLoadedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resource.Missing(name)
		}
		return resource.Failed(name, fmt.Errorf("failed to read store metadata: %w", err))
	}
	return resource.Found(name)
}
