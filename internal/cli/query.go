package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopdata/internal/db"
	"github.com/pgEdge/pgedge-shopdata/internal/query"
	"github.com/pgEdge/pgedge-shopdata/internal/resource"
	"github.com/pgEdge/pgedge-shopdata/internal/shop"
)

var (
	queryFile        string
	queryName        string
	queryOutput      string
	queryPreviewRows int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run an analytic query against the ingested data",
	Long: `Run a query against a database populated by 'pgedge-shopdata ingest'
and write the full result set to a CSV file. The row count and the first
rows of the result are printed.

The query is read from --file, where blank lines and lines starting with
'--' are ignored, or taken from the built-in catalog with --name (see
'pgedge-shopdata queries').

Example:
  pgedge-shopdata query --connection "postgres://..." --file customer_analytics.sql
  pgedge-shopdata query --connection "postgres://..." --name country_spend --output output/spend.csv`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFile, "file", "",
		"query definition file (default: customer_analytics.sql)")
	queryCmd.Flags().StringVar(&queryName, "name", "",
		"built-in query name (overrides --file)")
	queryCmd.Flags().StringVar(&queryOutput, "output", "",
		"result CSV file (default: output/customer_analytics_results.csv)")
	queryCmd.Flags().IntVar(&queryPreviewRows, "preview-rows", -1,
		"number of result rows to print (default: 5)")
}

func applyQueryFlags() {
	if queryFile != "" {
		cfg.Query.File = queryFile
	}
	if queryName != "" {
		cfg.Query.Name = queryName
	}
	if queryOutput != "" {
		cfg.Query.Output = queryOutput
	}
	if queryPreviewRows >= 0 {
		cfg.Query.PreviewRows = queryPreviewRows
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	applyQueryFlags()

	// Validate configuration
	if err := cfg.ValidateQuery(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sql, ok := loadQuery(out)
	if !ok {
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(ctx, conn)

	executeQuery(ctx, out, conn, sql)
	return nil
}

// loadQuery resolves the configured query text. Failures are reported to
// out and stop the command before any database work.
func loadQuery(out io.Writer) (string, bool) {
	if cfg.Query.Name != "" {
		def, err := shop.GetQuery(cfg.Query.Name)
		if err != nil {
			fmt.Fprintf(out, "[ERROR] %v\n", err)
			fmt.Fprintln(out, "[INFO] Run 'pgedge-shopdata queries' to list the built-in queries")
			return "", false
		}
		return def.SQL, true
	}

	check := resource.Check(cfg.Query.File)
	if !check.OK() {
		if check.State == resource.StateMissing {
			fmt.Fprintf(out, "[ERROR] Query file not found: %s\n", cfg.Query.File)
		} else {
			fmt.Fprintf(out, "[ERROR] %s\n", check.Describe())
		}
		return "", false
	}

	sql, err := query.ReadDefinition(cfg.Query.File)
	if err != nil {
		class, detail := query.Describe(err)
		fmt.Fprintf(out, "[ERROR] %s: %s\n", class, detail)
		return "", false
	}
	return sql, true
}

// executeQuery runs sql over conn, exports the result and prints a preview.
// Every failure is reported to out rather than returned.
func executeQuery(ctx context.Context, out io.Writer, conn db.DB, sql string) {
	source := cfg.Query.File
	if cfg.Query.Name != "" {
		source = cfg.Query.Name
	}

	printBanner(out, "Running analytic query")
	fmt.Fprintf(out, "Query: %s\n", source)
	fmt.Fprintf(out, "Output file: %s\n", cfg.Query.Output)
	fmt.Fprintln(out, "--------------------------------------------------")

	res, err := query.NewRunner(conn).Run(ctx, sql, cfg.Query.Output)
	if err != nil {
		class, detail := query.Describe(err)
		fmt.Fprintf(out, "[ERROR] %s: %s\n", class, detail)
		return
	}

	fmt.Fprintln(out, "[OK] Query executed successfully")
	fmt.Fprintf(out, "[OK] Results saved to: %s\n", cfg.Query.Output)
	fmt.Fprintf(out, "[OK] Rows returned: %d\n", len(res.Rows))

	if cfg.Query.PreviewRows > 0 && len(res.Rows) > 0 {
		fmt.Fprintf(out, "\nFirst %d rows:\n", min(cfg.Query.PreviewRows, len(res.Rows)))
		if err := query.Preview(out, res, cfg.Query.PreviewRows); err != nil {
			fmt.Fprintf(out, "[ERROR] %s: %v\n", query.FailureOther, err)
			return
		}
	}

	fmt.Fprintln(out)
	printBanner(out, "Query execution completed!")
}
