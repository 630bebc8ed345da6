package domain

import (
	"sort"
	"time"
)

const (
	// WorkHoursPerDay is one standard workday.
	WorkHoursPerDay = 8
	// LeaderboardSize caps the employee leaderboard.
	LeaderboardSize = 10
	// TrendDays is the width of the daily trend window, today included.
	TrendDays = 7
	// NotApplicable labels the performing-department slots when nothing
	// has been logged.
	NotApplicable = "N/A"
	// TrendLabelLayout renders trend dates as "Jan 2".
	TrendLabelLayout = "Jan 2"
)

// ExecutiveStats is the summary card row of the dashboard.
type ExecutiveStats struct {
	TotalTasks             int
	CompletedTasks         int
	CompletionRate         float64
	AvgTaskDuration        float64
	TopPerformingDept      string
	LeastPerformingDept    string
	OverallUtilizationRate float64
	// ReworkRate is reserved; no source data tracks rework so it is always 0.
	ReworkRate float64
}

type EmployeeStats struct {
	Name            string
	CompletedTasks  int
	AvgTaskDuration float64
	UtilizationRate float64
}

type DepartmentStats struct {
	Department      Department
	TotalTasks      int
	CompletionRate  float64
	AvgTaskDuration float64
	UtilizationRate float64
}

type DailyTrendPoint struct {
	Date           time.Time
	Label          string
	TotalTasks     int
	CompletedTasks int
}

type TaskStatusDistributionPoint struct {
	Status TaskStatus
	Count  int
}

type DataQualityStats struct {
	FormCompletenessScore float64
	MissingTimeEntries    float64
}

// KPIData bundles every derived statistic group consumed by the views.
type KPIData struct {
	ExecutiveSummary        ExecutiveStats
	EmployeeLeaderboard     []EmployeeStats
	DepartmentalPerformance []DepartmentStats
	DailyTrend              []DailyTrendPoint
	TaskStatusDistribution  []TaskStatusDistributionPoint
	DataQuality             DataQualityStats
}

// ComputeKPIs derives all statistic groups. filtered feeds every group
// except the daily trend, which always reads all logs and is anchored at
// today.
func ComputeKPIs(filtered, all []ProductivityLog, today time.Time) KPIData {
	depts := DepartmentalPerformance(filtered)
	return KPIData{
		ExecutiveSummary:        ExecutiveSummary(filtered, depts),
		EmployeeLeaderboard:     EmployeeLeaderboard(filtered),
		DepartmentalPerformance: depts,
		DailyTrend:              DailyTrend(all, today),
		TaskStatusDistribution:  TaskStatusDistribution(filtered),
		DataQuality:             DataQuality(filtered),
	}
}

// UtilizationRate is logged hours as a percentage of available hours,
// where each distinct (employee, day) pair contributes one workday no
// matter how many tasks were logged that day.
func UtilizationRate(logs []ProductivityLog) float64 {
	if len(logs) == 0 {
		return 0
	}

	var totalHours float64
	workDays := make(map[string]map[string]struct{})
	for _, l := range logs {
		totalHours += l.Hours
		days, ok := workDays[l.EmployeeName]
		if !ok {
			days = make(map[string]struct{})
			workDays[l.EmployeeName] = days
		}
		days[l.DateKey()] = struct{}{}
	}

	totalWorkDays := 0
	for _, days := range workDays {
		totalWorkDays += len(days)
	}

	available := float64(totalWorkDays * WorkHoursPerDay)
	if available <= 0 {
		return 0
	}
	return totalHours / available * 100
}

// DepartmentalPerformance returns one entry per department, including
// departments with no logs, ordered by task count descending. Equal counts
// keep declaration order.
func DepartmentalPerformance(logs []ProductivityLog) []DepartmentStats {
	byDept := make(map[Department][]ProductivityLog)
	for _, l := range logs {
		byDept[l.Department] = append(byDept[l.Department], l)
	}

	out := make([]DepartmentStats, 0, len(departments))
	for _, dept := range departments {
		scoped := byDept[dept]
		total, completed, hours := tally(scoped)
		out = append(out, DepartmentStats{
			Department:      dept,
			TotalTasks:      total,
			CompletionRate:  percent(completed, total),
			AvgTaskDuration: average(hours, total),
			UtilizationRate: UtilizationRate(scoped),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalTasks > out[j].TotalTasks
	})
	return out
}

// EmployeeLeaderboard ranks employees with at least one log by completed
// tasks, keeping first-seen order on ties, and returns the top ten.
func EmployeeLeaderboard(logs []ProductivityLog) []EmployeeStats {
	var order []string
	byName := make(map[string][]ProductivityLog)
	for _, l := range logs {
		if _, ok := byName[l.EmployeeName]; !ok {
			order = append(order, l.EmployeeName)
		}
		byName[l.EmployeeName] = append(byName[l.EmployeeName], l)
	}

	out := make([]EmployeeStats, 0, len(order))
	for _, name := range order {
		scoped := byName[name]
		total, completed, hours := tally(scoped)
		out = append(out, EmployeeStats{
			Name:            name,
			CompletedTasks:  completed,
			AvgTaskDuration: average(hours, total),
			UtilizationRate: UtilizationRate(scoped),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedTasks > out[j].CompletedTasks
	})
	if len(out) > LeaderboardSize {
		out = out[:LeaderboardSize]
	}
	return out
}

// ExecutiveSummary computes the headline figures. depts must be the
// DepartmentalPerformance of the same logs; top and least performers are
// picked from departments with tasks, by completion rate descending, ties
// keeping the order of depts.
func ExecutiveSummary(logs []ProductivityLog, depts []DepartmentStats) ExecutiveStats {
	total, completed, hours := tally(logs)

	active := make([]DepartmentStats, 0, len(depts))
	for _, d := range depts {
		if d.TotalTasks > 0 {
			active = append(active, d)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CompletionRate > active[j].CompletionRate
	})

	top, least := NotApplicable, NotApplicable
	if len(active) > 0 {
		top = string(active[0].Department)
		least = string(active[len(active)-1].Department)
	}

	return ExecutiveStats{
		TotalTasks:             total,
		CompletedTasks:         completed,
		CompletionRate:         percent(completed, total),
		AvgTaskDuration:        average(hours, total),
		TopPerformingDept:      top,
		LeastPerformingDept:    least,
		OverallUtilizationRate: UtilizationRate(logs),
		ReworkRate:             0,
	}
}

// DailyTrend counts total and completed logs on each of the seven days
// ending at today, oldest first.
func DailyTrend(logs []ProductivityLog, today time.Time) []DailyTrendPoint {
	end := DateOf(today)

	type counts struct{ total, completed int }
	byDay := make(map[string]*counts)
	for _, l := range logs {
		key := l.DateKey()
		c, ok := byDay[key]
		if !ok {
			c = &counts{}
			byDay[key] = c
		}
		c.total++
		if l.IsComplete() {
			c.completed++
		}
	}

	out := make([]DailyTrendPoint, TrendDays)
	for i := range TrendDays {
		day := end.AddDate(0, 0, i-(TrendDays-1))
		p := DailyTrendPoint{Date: day, Label: day.Format(TrendLabelLayout)}
		if c, ok := byDay[day.Format(DateLayout)]; ok {
			p.TotalTasks = c.total
			p.CompletedTasks = c.completed
		}
		out[i] = p
	}
	return out
}

// TaskStatusDistribution counts logs per status, every status present.
func TaskStatusDistribution(logs []ProductivityLog) []TaskStatusDistributionPoint {
	counts := make(map[TaskStatus]int, len(taskStatuses))
	for _, l := range logs {
		counts[l.TaskStatus]++
	}
	out := make([]TaskStatusDistributionPoint, len(taskStatuses))
	for i, st := range taskStatuses {
		out[i] = TaskStatusDistributionPoint{Status: st, Count: counts[st]}
	}
	return out
}

// DataQuality scores form completeness and missing time entries. An empty
// collection is vacuously complete.
func DataQuality(logs []ProductivityLog) DataQualityStats {
	if len(logs) == 0 {
		return DataQualityStats{FormCompletenessScore: 100, MissingTimeEntries: 0}
	}

	complete, missingTime := 0, 0
	for _, l := range logs {
		if l.EmployeeName != "" && l.EmployeeID != "" && l.TaskDescription != "" &&
			l.Hours > 0 && l.ProductivityRating > 0 {
			complete++
		}
		if l.Hours <= 0 {
			missingTime++
		}
	}

	return DataQualityStats{
		FormCompletenessScore: percent(complete, len(logs)),
		MissingTimeEntries:    percent(missingTime, len(logs)),
	}
}

func tally(logs []ProductivityLog) (total, completed int, hours float64) {
	for _, l := range logs {
		if l.IsComplete() {
			completed++
		}
		hours += l.Hours
	}
	return len(logs), completed, hours
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
