package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/liftlog/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history and stars",
	Long: `Export your history and star ledger as JSON.

Examples:
  liftlog export                        # liftlog-export-<date>.json in the current dir
  liftlog export --gzip                 # same, gzip-compressed
  liftlog export -o backup.json.gz      # a .gz name selects gzip
  liftlog export --csv -o sets.csv      # one row per set, for spreadsheets`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportOutput string
	exportGzip   bool
	exportCSV    bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file")
	exportCmd.Flags().BoolVar(&exportGzip, "gzip", false, "Compress the default output file")
	exportCmd.Flags().BoolVar(&exportCSV, "csv", false, "Write a per-set CSV instead of JSON")
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	tr := e.tracker
	path := exportOutput
	if exportCSV {
		if path == "" {
			path = "liftlog-sets-" + tr.Now().Format("2006-01-02") + ".csv"
		}
		if err := export.ToCSV(tr.History().Sessions(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d days to %s\n", tr.History().Len(), path)
		return nil
	}

	if path == "" {
		path = export.DefaultFileName(tr.Now().Format("2006-01-02"), exportGzip)
	}
	if err := tr.Export(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d days (%s) to %s\n", tr.History().Len(), tr.History().Stars(), path)
	return nil
}
