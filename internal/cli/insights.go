package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/insight"
	"github.com/emiliopalmerini/worklog/internal/util"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate an AI summary of the selected logs",
	Long: `Send the selected logs (first 50) to the configured provider and
print its summary.

The provider is chosen with WORKLOG_INSIGHT_PROVIDER (gemini or anthropic)
and authenticated with GEMINI_API_KEY / API_KEY or ANTHROPIC_API_KEY.

Examples:
  worklog insights
  worklog insights --department HSE
  worklog insights history --limit 5`,
	RunE: runInsights,
}

var insightsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated summaries",
	RunE:  runInsightsHistory,
}

var (
	insightsFilter       filterFlags
	insightsHistoryLimit int
)

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.AddCommand(insightsHistoryCmd)

	insightsFilter.register(insightsCmd)
	insightsHistoryCmd.Flags().IntVarP(&insightsHistoryLimit, "limit", "n", 10, "Number of summaries to show")
}

func runInsights(cmd *cobra.Command, args []string) error {
	filter, err := insightsFilter.parse()
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, app *AppContext) error {
		res, err := app.Insights.Generate(ctx, app.Logs.Filtered(filter))
		switch {
		case errors.Is(err, insight.ErrInsightUnavailable):
			return errors.New("API key not found: set GEMINI_API_KEY (or API_KEY) or ANTHROPIC_API_KEY")
		case errors.Is(err, insight.ErrNoLogs):
			return errors.New("no logs match the current filters")
		case err != nil:
			return fmt.Errorf("failed to generate insights: %s", insight.Details(err))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Text)
		fmt.Fprintf(out, "\n(%s, %d logs)\n", res.Provider, res.LogCount)
		return nil
	})
}

func runInsightsHistory(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, app *AppContext) error {
		runs, err := app.Insights.History(ctx, insightsHistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to load insight history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No insights generated yet.")
			return nil
		}
		for _, run := range runs {
			fmt.Fprintf(out, "%s  %-28s %3d logs  %5d/%-5d tokens  %s\n",
				run.CreatedAt.Local().Format("2006-01-02 15:04"),
				util.Truncate(run.Provider, 28), run.LogCount,
				run.InputTokens, run.OutputTokens,
				util.Truncate(firstLine(run.Summary), 60))
		}
		return nil
	})
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
