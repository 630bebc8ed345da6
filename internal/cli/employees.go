package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/pkg/tui/theme"
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List employees and departments",
	Long: `List every employee who has logged work, with their department and
task count, followed by the selectable departments.`,
	RunE: runEmployees,
}

func init() {
	rootCmd.AddCommand(employeesCmd)
}

func runEmployees(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(_ context.Context, app *AppContext) error {
		printEmployees(cmd.OutOrStdout(), app.Logs.Logs())
		return nil
	})
}

func printEmployees(w io.Writer, logs []domain.ProductivityLog) {
	s := theme.Default()

	counts := make(map[string]int)
	depts := make(map[string]domain.Department)
	for _, l := range logs {
		counts[l.EmployeeName]++
		if _, ok := depts[l.EmployeeName]; !ok {
			depts[l.EmployeeName] = l.Department
		}
	}

	values := domain.ExtractUniqueValues(logs)

	fmt.Fprintln(w, s.Title.Render("Employees"))
	if len(values.Employees) == 0 {
		fmt.Fprintln(w, s.Muted.Render("  No logs yet."))
	}
	for _, name := range values.Employees {
		fmt.Fprintf(w, "  %s %s %s\n",
			s.Label.Render(name),
			s.Value.Render(fmt.Sprintf("%4d tasks", counts[name])),
			s.Muted.Render(string(depts[name])))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Title.Render("Departments"))
	for _, d := range values.Departments {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
