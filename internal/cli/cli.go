//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-shopdata.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopdata/internal/config"
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
	"github.com/pgEdge/pgedge-shopdata/internal/shop"
	"github.com/pgEdge/pgedge-shopdata/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	dataDir    string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-shopdata",
		Short: "Synthetic e-commerce dataset generator and loader for PostgreSQL",
		Long: `pgedge-shopdata generates a synthetic e-commerce dataset (customers,
products, orders, payment transactions and product reviews), exports it as
CSV files, bulk-loads those files into a PostgreSQL database and runs
analytic queries against the loaded data.

The three stages can be run one at a time (generate, ingest, query) or as
a single pipeline (run). With a fixed seed and as-of date the generated
files are identical from run to run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-shopdata.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"directory for generated CSV files (default: data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(queriesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// commandContext returns a context that is cancelled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func printBanner(out io.Writer, title string) {
	rule := "=================================================="
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, rule)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List built-in analytic queries",
	Long: `List the named analytic queries that can be run against an ingested
database with 'pgedge-shopdata query --name <query>'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available queries:")
		fmt.Fprintln(out)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, q := range shop.Queries() {
			fmt.Fprintf(tw, "  %s\t- %s\n", q.Name, q.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use 'pgedge-shopdata query --name <query>' to run one.")
		return nil
	},
}
