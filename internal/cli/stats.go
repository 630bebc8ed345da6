package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/pkg/tui/components"
	"github.com/emiliopalmerini/worklog/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/worklog/internal/productivity"
	"github.com/emiliopalmerini/worklog/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the KPI dashboard in the terminal",
	Long: `Show the KPI dashboard for the selected logs.

Examples:
  worklog stats                                  # All logs
  worklog stats --department IT                  # One department
  worklog stats --start 2024-06-01 --end 2024-06-30
  worklog stats --employee "Jane Doe"`,
	RunE: runStats,
}

var statsFilter filterFlags

func init() {
	rootCmd.AddCommand(statsCmd)
	statsFilter.register(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	filter, err := statsFilter.parse()
	if err != nil {
		return err
	}
	return withApp(cmd, func(_ context.Context, app *AppContext) error {
		printStats(cmd.OutOrStdout(), app.Logs.Dashboard(filter), statsFilter.label())
		return nil
	})
}

const barWidth = 20

func printStats(w io.Writer, d *productivity.Dashboard, filterLabel string) {
	st := theme.Default()
	bar := components.NewBar(barWidth)
	s := d.KPI.ExecutiveSummary

	line := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", st.Label.Render(label), st.Value.Render(value))
	}
	rate := func(label string, v float64) {
		fmt.Fprintf(w, "  %s %s %s\n", st.Label.Render(label), bar.View(v), st.Rate(v, util.FormatPercent(v)))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", st.Title.Render("AIS Productivity KPIs"))
	fmt.Fprintf(w, "  %s\n", st.Muted.Render(fmt.Sprintf("%s (%d of %d logs)", filterLabel, len(d.Logs), d.TotalLogs)))

	fmt.Fprintf(w, "  %s\n", st.Subtitle.Render("Executive Summary"))
	line("Total tasks", fmt.Sprintf("%d", s.TotalTasks))
	line("Completed tasks", fmt.Sprintf("%d", s.CompletedTasks))
	rate("Completion rate", s.CompletionRate)
	line("Avg task duration", util.FormatHours(s.AvgTaskDuration))
	rate("Utilization", s.OverallUtilizationRate)
	line("Top department", s.TopPerformingDept)
	line("Least performing", s.LeastPerformingDept)
	line("Rework rate", util.FormatPercent(s.ReworkRate))

	fmt.Fprintf(w, "  %s\n", st.Subtitle.Render("Data Quality"))
	rate("Form completeness", d.KPI.DataQuality.FormCompletenessScore)
	line("Missing time entries", util.FormatPercent(d.KPI.DataQuality.MissingTimeEntries))

	if len(d.KPI.EmployeeLeaderboard) > 0 {
		fmt.Fprintf(w, "  %s\n", st.Subtitle.Render("Employee Leaderboard"))
		for i, e := range d.KPI.EmployeeLeaderboard {
			fmt.Fprintf(w, "  %2d. %-24s %3d done  %6s avg  %s util\n",
				i+1, util.Truncate(e.Name, 24), e.CompletedTasks,
				util.FormatHours(e.AvgTaskDuration), util.FormatPercent(e.UtilizationRate))
		}
	}

	fmt.Fprintf(w, "  %s\n", st.Subtitle.Render("Departments"))
	active := 0
	for _, dept := range d.KPI.DepartmentalPerformance {
		if dept.TotalTasks == 0 {
			continue
		}
		active++
		fmt.Fprintf(w, "  %-22s %3d tasks  %s %s\n",
			util.Truncate(string(dept.Department), 22), dept.TotalTasks,
			bar.View(dept.CompletionRate), st.Rate(dept.CompletionRate, util.FormatPercent(dept.CompletionRate)))
	}
	if active == 0 {
		fmt.Fprintf(w, "  %s\n", st.Muted.Render("No tasks logged."))
	}

	fmt.Fprintf(w, "  %s\n", st.Subtitle.Render("Last 7 Days"))
	fmt.Fprintf(w, "  %s\n", trendLine(d.KPI.DailyTrend))

	fmt.Fprintf(w, "  %s\n", st.Subtitle.Render("Task Status"))
	for _, p := range d.KPI.TaskStatusDistribution {
		fmt.Fprintf(w, "  %-12s %d\n", p.Status, p.Count)
	}
	fmt.Fprintln(w)
}

// trendLine renders the daily trend as "Jun 9 2/3 | Jun 10 0/0 | ...",
// completed over total.
func trendLine(points []domain.DailyTrendPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%s %d/%d", p.Label, p.CompletedTasks, p.TotalTasks)
	}
	return strings.Join(parts, " | ")
}
