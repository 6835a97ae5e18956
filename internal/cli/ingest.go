package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/ingest"
)

var ingestBatchSize int

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the schema and load the CSV files",
	Long: `Drop and recreate the shop tables, then bulk-load each CSV file from
the data directory. Tables are loaded parents first (customers, products,
orders, transactions, reviews). A missing or malformed file is reported
and the remaining tables are still loaded.

Example:
  pgedge-shopdata ingest --connection "postgres://..." --data-dir data`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestBatchSize, "batch-size", 0,
		"rows per COPY batch (default: 1000)")
}

func applyIngestFlags() {
	if ingestBatchSize > 0 {
		cfg.Ingest.BatchSize = ingestBatchSize
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	applyIngestFlags()

	// Validate configuration
	if err := cfg.ValidateIngest(); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(ctx, conn)

	return ingestData(ctx, cmd.OutOrStdout(), conn)
}

// ingestData rebuilds the schema and loads the data directory over conn.
func ingestData(ctx context.Context, out io.Writer, conn db.DB) error {
	loader := ingest.NewLoader(conn, ingest.Config{
		DataDir:   cfg.DataDir,
		BatchSize: cfg.Ingest.BatchSize,
	})

	fmt.Fprintln(out)
	printBanner(out, "Starting CSV ingestion...")
	fmt.Fprintln(out)

	report, err := loader.Run(ctx)
	if report != nil {
		for _, t := range report.Tables {
			switch t.Status {
			case ingest.StatusLoaded:
				fmt.Fprintf(out, "[OK] Ingested %s: %d rows inserted\n", t.Path, t.Rows)
			case ingest.StatusSkipped:
				fmt.Fprintf(out, "[ERROR] File not found: %s\n", t.Path)
			default:
				fmt.Fprintf(out, "[ERROR] Failed to ingest %s: %v\n", t.Path, t.Err)
			}
		}
	}
	if err != nil {
		fmt.Fprintf(out, "\n[ERROR] An error occurred during ingestion: %v\n", err)
		return err
	}

	fmt.Fprintln(out)
	if report.Loaded() == len(report.Tables) {
		printBanner(out, "Database ingestion completed successfully!")
	} else {
		printBanner(out, fmt.Sprintf("Database ingestion completed with errors (%d of %d tables loaded)",
			report.Loaded(), len(report.Tables)))
	}

	fmt.Fprintln(out, "\nTable row counts:")
	for _, t := range report.Tables {
		if t.Rows < 0 {
			fmt.Fprintf(out, "  - %s: unavailable\n", t.Table)
			continue
		}
		fmt.Fprintf(out, "  - %s: %d rows\n", t.Table, t.Rows)
	}
	fmt.Fprintf(out, "\n[INFO] Run ID: %s\n", report.RunID)
	return nil
}
