package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/resource"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last ingestion recorded in the database",
	Long: `Show whether the database holds an ingested dataset and, if so, the
metadata recorded by the last 'pgedge-shopdata ingest' run.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if cfg.Connection == "" {
		return fmt.Errorf("connection string is required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(ctx, conn)

	out := cmd.OutOrStdout()
	probe := db.ProbeStore(ctx, conn)
	switch probe.State {
	case resource.StateMissing:
		fmt.Fprintln(out, "[INFO] No ingested dataset found")
		fmt.Fprintln(out, "[INFO] Run 'pgedge-shopdata ingest' first")
		return nil
	case resource.StateFailed:
		fmt.Fprintf(out, "[ERROR] %s\n", probe.Describe())
		return nil
	}

	meta, err := db.GetAllMetadata(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, "[OK] Dataset ingested")
	for _, k := range keys {
		fmt.Fprintf(out, "  %-20s %s\n", k, meta[k])
	}
	return nil
}
