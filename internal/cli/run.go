package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate, ingest and query in one pass",
	Long: `Run the whole pipeline: generate the dataset into the data directory,
load it into the database and run the configured query. The generate,
ingest and query flags all apply.

Example:
  pgedge-shopdata run --connection "postgres://..." --seed 42 --as-of 2025-06-30`,
	RunE: runRun,
}

func init() {
	// run accepts the flags of every stage it drives
	runCmd.Flags().AddFlagSet(generateCmd.Flags())
	runCmd.Flags().AddFlagSet(ingestCmd.Flags())
	runCmd.Flags().AddFlagSet(queryCmd.Flags())
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	applyGenerateFlags(cmd)
	applyIngestFlags()
	applyQueryFlags()

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}
	if err := cfg.ValidateIngest(); err != nil {
		return err
	}
	if err := cfg.ValidateQuery(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	logging.Info().
		Str("data_dir", cfg.DataDir).
		Msg("Starting pipeline")

	if err := generateData(out); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(ctx, conn)

	if err := ingestData(ctx, out, conn); err != nil {
		return err
	}

	fmt.Fprintln(out)
	sql, ok := loadQuery(out)
	if !ok {
		return nil
	}
	executeQuery(ctx, out, conn, sql)

	logging.Info().Msg("Pipeline complete")
	return nil
}
