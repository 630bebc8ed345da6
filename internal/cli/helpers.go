package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/config"
	"github.com/emiliopalmerini/worklog/internal/logger"
)

// loadConfig reads the environment and builds the logger. Outside
// verbose mode and serve, only warnings are logged so command output
// stays readable.
func loadConfig(quiet bool) (*config.App, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Log.Level
	if quiet && !verbose {
		level = "warn"
	}
	log, err := logger.New(logger.Config{Level: level, Development: cfg.Log.Development})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// withApp runs fn with a fully initialized AppContext.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *AppContext) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig(true)
	if err != nil {
		return err
	}
	app, err := NewAppContext(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(context.WithoutCancel(ctx))

	return fn(ctx, app)
}

// filterFlags are the dashboard selectors expressed as flags.
type filterFlags struct {
	start      string
	end        string
	department string
	employee   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.department, "department", "d", "", "Department name, e.g. \"Admin/HR\"")
	cmd.Flags().StringVarP(&f.employee, "employee", "e", "", "Employee name")
}

func (f filterFlags) parse() (domain.Filter, error) {
	if f.department != "" {
		if _, err := domain.ParseDepartment(f.department); err != nil {
			return domain.Filter{}, err
		}
	}
	return domain.ParseFilter(f.start, f.end, f.department, f.employee)
}

// label describes the active filter for report headers.
func (f filterFlags) label() string {
	var parts []string
	if f.start != "" || f.end != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", orDash(f.start), orDash(f.end)))
	}
	if f.department != "" {
		parts = append(parts, "Department: "+f.department)
	}
	if f.employee != "" {
		parts = append(parts, "Employee: "+f.employee)
	}
	if len(parts) == 0 {
		return "All logs"
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
