package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Productivity log dashboard for AIS departments",
	Long: `worklog collects daily productivity logs and turns them into KPIs.

Submit daily task logs, browse the KPI dashboard in a browser or the
terminal, export logs as CSV or JSON, and ask a language model for a
narrative summary of the current view.`,
	SilenceUsage: true,
}

var verbose bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured level instead of warnings only")
}
