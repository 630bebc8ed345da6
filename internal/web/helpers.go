package web

import (
	"encoding/json"
	"net/http"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/web/templates"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

// parseFilter reads the filter selectors from the query string. Empty
// values mean no constraint.
func parseFilter(r *http.Request) (domain.Filter, templates.FilterState, error) {
	q := r.URL.Query()
	state := templates.FilterState{
		Start:      q.Get("start"),
		End:        q.Get("end"),
		Department: q.Get("department"),
		Employee:   q.Get("employee"),
	}
	f, err := domain.ParseFilter(state.Start, state.End, state.Department, state.Employee)
	if err != nil {
		return domain.Filter{}, state, err
	}
	return f, state, nil
}

type executiveJSON struct {
	TotalTasks             int     `json:"totalTasks"`
	CompletedTasks         int     `json:"completedTasks"`
	CompletionRate         float64 `json:"completionRate"`
	AvgTaskDuration        float64 `json:"avgTaskDuration"`
	TopPerformingDept      string  `json:"topPerformingDept"`
	LeastPerformingDept    string  `json:"leastPerformingDept"`
	OverallUtilizationRate float64 `json:"overallUtilizationRate"`
	ReworkRate             float64 `json:"reworkRate"`
}

type employeeJSON struct {
	Name            string  `json:"name"`
	CompletedTasks  int     `json:"completedTasks"`
	AvgTaskDuration float64 `json:"avgTaskDuration"`
	UtilizationRate float64 `json:"utilizationRate"`
}

type departmentJSON struct {
	Department      string  `json:"department"`
	TotalTasks      int     `json:"totalTasks"`
	CompletionRate  float64 `json:"completionRate"`
	AvgTaskDuration float64 `json:"avgTaskDuration"`
	UtilizationRate float64 `json:"utilizationRate"`
}

type trendJSON struct {
	Date           string `json:"date"`
	TotalTasks     int    `json:"Total Tasks"`
	CompletedTasks int    `json:"Completed Tasks"`
}

type statusJSON struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type dataQualityJSON struct {
	FormCompletenessScore float64 `json:"formCompletenessScore"`
	MissingTimeEntries    float64 `json:"missingTimeEntries"`
}

type kpiJSON struct {
	ExecutiveSummary        executiveJSON    `json:"executiveSummary"`
	EmployeeLeaderboard     []employeeJSON   `json:"employeeLeaderboard"`
	DepartmentalPerformance []departmentJSON `json:"departmentalPerformance"`
	DailyTrend              []trendJSON      `json:"dailyTrend"`
	TaskStatusDistribution  []statusJSON     `json:"taskStatusDistribution"`
	DataQuality             dataQualityJSON  `json:"dataQuality"`
}

func toKPIJSON(k domain.KPIData) kpiJSON {
	s := k.ExecutiveSummary
	out := kpiJSON{
		ExecutiveSummary: executiveJSON{
			TotalTasks:             s.TotalTasks,
			CompletedTasks:         s.CompletedTasks,
			CompletionRate:         s.CompletionRate,
			AvgTaskDuration:        s.AvgTaskDuration,
			TopPerformingDept:      s.TopPerformingDept,
			LeastPerformingDept:    s.LeastPerformingDept,
			OverallUtilizationRate: s.OverallUtilizationRate,
			ReworkRate:             s.ReworkRate,
		},
		EmployeeLeaderboard:     make([]employeeJSON, len(k.EmployeeLeaderboard)),
		DepartmentalPerformance: make([]departmentJSON, len(k.DepartmentalPerformance)),
		DailyTrend:              make([]trendJSON, len(k.DailyTrend)),
		TaskStatusDistribution:  make([]statusJSON, len(k.TaskStatusDistribution)),
		DataQuality: dataQualityJSON{
			FormCompletenessScore: k.DataQuality.FormCompletenessScore,
			MissingTimeEntries:    k.DataQuality.MissingTimeEntries,
		},
	}
	for i, e := range k.EmployeeLeaderboard {
		out.EmployeeLeaderboard[i] = employeeJSON(e)
	}
	for i, d := range k.DepartmentalPerformance {
		out.DepartmentalPerformance[i] = departmentJSON{
			Department:      string(d.Department),
			TotalTasks:      d.TotalTasks,
			CompletionRate:  d.CompletionRate,
			AvgTaskDuration: d.AvgTaskDuration,
			UtilizationRate: d.UtilizationRate,
		}
	}
	for i, p := range k.DailyTrend {
		out.DailyTrend[i] = trendJSON{Date: p.Label, TotalTasks: p.TotalTasks, CompletedTasks: p.CompletedTasks}
	}
	for i, p := range k.TaskStatusDistribution {
		out.TaskStatusDistribution[i] = statusJSON{Name: string(p.Status), Value: p.Count}
	}
	return out
}
