package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export productivity logs",
	Long: `Export the selected logs as CSV or JSON.

Without --output the file is written to the current directory as
ais_productivity_logs_<today>.<format>. Use --output - for stdout.

Examples:
  worklog export                          # CSV of every log
  worklog export --format json -o -       # JSON to stdout
  worklog export --department IT --start 2024-06-01`,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
	exportFilter filterFlags
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatCSV, "Output format: csv, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (- for stdout)")
	exportFilter.register(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := exportFilter.parse()
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, app *AppContext) error {
		path := exportOutput
		if path == "" {
			path = export.Filename(exportFormat, app.Logs.Today())
		}
		n, err := writeExport(cmd.OutOrStdout(), path, exportFormat, app.Logs.Filtered(filter))
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d logs to %s\n", n, path)
		}
		return nil
	})
}

// writeExport writes logs to path, or to stdout for "-". The file is only
// created once there is something to write.
func writeExport(stdout io.Writer, path, format string, logs []domain.ProductivityLog) (int, error) {
	if len(logs) == 0 {
		return 0, fmt.Errorf("%w: no logs match the current filters", export.ErrNoData)
	}
	if format != export.FormatCSV && format != export.FormatJSON {
		return 0, fmt.Errorf("%w: %s (use json or csv)", export.ErrUnknownFormat, format)
	}

	if path == "-" {
		return len(logs), export.Write(stdout, format, logs)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	werr := export.Write(f, format, logs)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(logs), nil
}
