package templates

import (
	"time"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

// FilterState echoes the selector values back into the form.
type FilterState struct {
	Start      string
	End        string
	Department string
	Employee   string
}

// IsZero reports whether no selector is set.
func (f FilterState) IsZero() bool {
	return f.Start == "" && f.End == "" && f.Department == "" && f.Employee == ""
}

type DashboardPage struct {
	Filter      FilterState
	KPI         domain.KPIData
	Employees   []string
	Departments []domain.Department
	RecentLogs  []domain.ProductivityLog
	FilteredLen int
	TotalLogs   int
	// InsightsEnabled hides the insight button when no provider is configured.
	InsightsEnabled bool
	History         []domain.InsightRun
	GeneratedAt     time.Time
}

type InsightPanel struct {
	Text     string
	Provider string
	LogCount int
	Error    string
	Details  string
}
