package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/productivity"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Submit a daily productivity log",
	Long: `Submit one employee's tasks for one day.

Each --task is "description|category|status". Hours are split equally
across the tasks. Alternatively pass a JSON submission with --file
("-" reads stdin).

Examples:
  worklog log --name "Jane Doe" --id AIS/042 --department IT --hours 8 --rating 4 \
    --task "Patch servers|IT|Complete" --task "Weekly report|Reporting|In Progress"
  worklog log --file submission.json`,
	RunE: runLog,
}

var (
	logName       string
	logID         string
	logDepartment string
	logDate       string
	logHours      float64
	logRating     int
	logBlockers   string
	logCarried    string
	logTasks      []string
	logFile       string
)

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVar(&logName, "name", "", "Employee name")
	logCmd.Flags().StringVar(&logID, "id", "", "Employee ID")
	logCmd.Flags().StringVarP(&logDepartment, "department", "d", "", "Department")
	logCmd.Flags().StringVar(&logDate, "date", "", "Day worked (YYYY-MM-DD, default today)")
	logCmd.Flags().Float64Var(&logHours, "hours", 0, "Total hours worked")
	logCmd.Flags().IntVar(&logRating, "rating", 0, "Self-rated productivity (1-5)")
	logCmd.Flags().StringVar(&logBlockers, "blockers", "", "Blockers encountered")
	logCmd.Flags().StringVar(&logCarried, "carried-over", "", "Tasks carried over to the next day")
	logCmd.Flags().StringArrayVarP(&logTasks, "task", "t", nil, `Task as "description|category|status" (repeatable)`)
	logCmd.Flags().StringVarP(&logFile, "file", "f", "", "Read a JSON submission from file (- for stdin)")
}

// parseTask splits a "description|category|status" flag value and checks
// the category and status names.
func parseTask(s string) (productivity.TaskRequest, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return productivity.TaskRequest{}, fmt.Errorf("invalid task %q: expected \"description|category|status\"", s)
	}
	category, err := domain.ParseTaskCategory(strings.TrimSpace(parts[1]))
	if err != nil {
		return productivity.TaskRequest{}, fmt.Errorf("invalid task %q: %w", s, err)
	}
	status, err := domain.ParseTaskStatus(strings.TrimSpace(parts[2]))
	if err != nil {
		return productivity.TaskRequest{}, fmt.Errorf("invalid task %q: %w", s, err)
	}
	return productivity.TaskRequest{
		TaskDescription: strings.TrimSpace(parts[0]),
		TaskCategory:    string(category),
		TaskStatus:      string(status),
	}, nil
}

func readSubmission(r io.Reader) (productivity.SubmissionRequest, error) {
	var req productivity.SubmissionRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to parse submission: %w", err)
	}
	return req, nil
}

func buildSubmissionRequest(stdin io.Reader, today string) (productivity.SubmissionRequest, error) {
	if logFile != "" {
		if logFile == "-" {
			return readSubmission(stdin)
		}
		f, err := os.Open(logFile)
		if err != nil {
			return productivity.SubmissionRequest{}, fmt.Errorf("failed to open submission: %w", err)
		}
		defer f.Close()
		return readSubmission(f)
	}

	req := productivity.SubmissionRequest{
		EmployeeName:       logName,
		EmployeeID:         logID,
		Department:         logDepartment,
		Date:               logDate,
		Hours:              logHours,
		ProductivityRating: logRating,
		Blockers:           logBlockers,
		TasksCarriedOver:   logCarried,
	}
	if req.Date == "" {
		req.Date = today
	}
	for _, t := range logTasks {
		task, err := parseTask(t)
		if err != nil {
			return req, err
		}
		req.Tasks = append(req.Tasks, task)
	}
	return req, nil
}

func runLog(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, app *AppContext) error {
		req, err := buildSubmissionRequest(cmd.InOrStdin(), app.Logs.Today().Format(domain.DateLayout))
		if err != nil {
			return err
		}
		return submitLog(ctx, cmd.OutOrStdout(), app.Logs, req)
	})
}

func submitLog(ctx context.Context, w io.Writer, svc *productivity.Service, req productivity.SubmissionRequest) error {
	sub, err := req.ToSubmission()
	if err != nil {
		return err
	}
	added, err := svc.Submit(ctx, sub)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return formatValidationError(verr)
		}
		return err
	}

	fmt.Fprintf(w, "Logged %d task(s) for %s on %s (%.2fh each)\n",
		len(added), sub.EmployeeName, sub.Date.Format(domain.DateLayout), added[0].Hours)
	for _, l := range added {
		fmt.Fprintf(w, "  %s  %-14s %s\n", shortID(l.ID), l.TaskStatus, l.TaskDescription)
	}
	return nil
}

func formatValidationError(verr *domain.ValidationError) error {
	keys := make([]string, 0, len(verr.Fields))
	for k := range verr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("invalid submission:")
	for _, k := range keys {
		b.WriteString("\n  - ")
		b.WriteString(verr.Fields[k])
	}
	return errors.New(b.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
