//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-shopdata.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DateLayout is the format of date-valued settings.
const DateLayout = "2006-01-02"

// Config holds all configuration for pgedge-shopdata.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// DataDir is where generated CSV files are written and read from.
	DataDir string `mapstructure:"data_dir"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Ingest holds configuration for the ingest subcommand.
	Ingest IngestConfig `mapstructure:"ingest"`

	// Query holds configuration for the query subcommand.
	Query QueryConfig `mapstructure:"query"`
}

// GenerateConfig holds configuration for data generation.
type GenerateConfig struct {
	// Seed pins all randomness. Zero picks a time-based seed.
	Seed uint64 `mapstructure:"seed"`

	// MinRows is the minimum row count per table.
	MinRows int `mapstructure:"min_rows"`

	// MaxRows is the maximum row count per table.
	MaxRows int `mapstructure:"max_rows"`

	// HistoryYears is how far back customer signups may go.
	HistoryYears int `mapstructure:"history_years"`

	// AsOf is the dataset's "today" (YYYY-MM-DD). Empty means the current date.
	AsOf string `mapstructure:"as_of"`
}

// IngestConfig holds configuration for loading.
type IngestConfig struct {
	// BatchSize is the number of rows sent per COPY.
	BatchSize int `mapstructure:"batch_size"`
}

// QueryConfig holds configuration for the query runner.
type QueryConfig struct {
	// File is the query definition to run.
	File string `mapstructure:"file"`

	// Name selects a built-in query instead of File.
	Name string `mapstructure:"name"`

	// Output is the CSV file the result set is written to.
	Output string `mapstructure:"output"`

	// PreviewRows is how many rows are printed after the query runs.
	PreviewRows int `mapstructure:"preview_rows"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  "data",
		Generate: GenerateConfig{
			Seed:         42,
			MinRows:      50,
			MaxRows:      100,
			HistoryYears: 3,
		},
		Ingest: IngestConfig{
			BatchSize: 1000,
		},
		Query: QueryConfig{
			File:        "customer_analytics.sql",
			Output:      filepath.Join("output", "customer_analytics_results.csv"),
			PreviewRows: 5,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-shopdata.yaml
// 3. ~/.config/pgedge-shopdata/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("pgedge-shopdata")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-shopdata"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration shared by every command.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data directory is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Generate.MinRows < 1 {
		return fmt.Errorf("min_rows must be at least 1")
	}
	if c.Generate.MaxRows < c.Generate.MinRows {
		return fmt.Errorf("max_rows must be >= min_rows")
	}
	if c.Generate.HistoryYears < 0 {
		return fmt.Errorf("history_years must be non-negative")
	}
	if _, err := c.Generate.AsOfDate(); err != nil {
		return err
	}
	return nil
}

// ValidateIngest checks configuration required for the ingest command.
func (c *Config) ValidateIngest() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

// ValidateQuery checks configuration required for the query command.
func (c *Config) ValidateQuery() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Query.File == "" && c.Query.Name == "" {
		return fmt.Errorf("a query file or query name is required")
	}
	if c.Query.Output == "" {
		return fmt.Errorf("query output file is required")
	}
	if c.Query.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must be non-negative")
	}
	return nil
}

// AsOfDate returns the configured as-of date, or the current UTC date when
// none is set.
func (g GenerateConfig) AsOfDate() (time.Time, error) {
	if g.AsOf == "" {
		return time.Now().UTC(), nil
	}
	d, err := time.Parse(DateLayout, g.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("as_of must be a YYYY-MM-DD date: %q", g.AsOf)
	}
	return d, nil
}
