package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/util"
)

const (
	pageTitle     = "AIS Productivity Dashboard"
	recentLogRows = 20
)

// Dashboard is the full page.
func Dashboard(p DashboardPage) templ.Component {
	return Layout(pageTitle, DashboardContent(p))
}

// DashboardContent is the swappable part of the page; filter changes
// replace it over HTMX.
func DashboardContent(p DashboardPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div id="dashboard">`)
		filterForm(h, p)
		summaryCards(h, p.KPI.ExecutiveSummary, p.KPI.DataQuality)
		leaderboard(h, p.KPI.EmployeeLeaderboard)
		departments(h, p.KPI.DepartmentalPerformance)
		dailyTrend(h, p.KPI.DailyTrend)
		statusDistribution(h, p.KPI.TaskStatusDistribution)
		insightSection(h, p)
		recentLogs(h, p)
		h.raw(`<p class="muted">Generated `)
		h.text(p.GeneratedAt.Format("Jan 2, 2006 15:04 MST"))
		h.raw(`</p></div>`)
		return h.err
	})
}

func filterForm(h *htmlWriter, p DashboardPage) {
	h.raw(`<form class="filters" method="get" action="/" hx-get="/" hx-target="#dashboard" hx-swap="outerHTML" hx-push-url="true" hx-trigger="change">`)
	h.rawf(`<label>Start <input type="date" name="start" value="%s"></label>`, p.Filter.Start)
	h.rawf(`<label>End <input type="date" name="end" value="%s"></label>`, p.Filter.End)

	h.raw(`<label>Department <select name="department"><option value="">All departments</option>`)
	for _, d := range p.Departments {
		option(h, string(d), p.Filter.Department)
	}
	h.raw(`</select></label>`)

	h.raw(`<label>Employee <select name="employee"><option value="">All employees</option>`)
	for _, e := range p.Employees {
		option(h, e, p.Filter.Employee)
	}
	h.raw(`</select></label>`)

	h.raw(`<noscript><button type="submit">Apply</button></noscript>`)
	if !p.Filter.IsZero() {
		h.raw(`<a href="/">Reset filters</a>`)
	}
	h.rawf(`<a href="%s">Export CSV</a> <a href="%s">Export JSON</a>`,
		exportURL("csv", p.Filter), exportURL("json", p.Filter))
	h.raw(`</form>`)
}

func option(h *htmlWriter, value, selected string) {
	sel := ""
	if value == selected {
		sel = " selected"
	}
	h.rawf(`<option value="%s"%s>`, value, sel)
	h.text(value)
	h.raw(`</option>`)
}

func card(h *htmlWriter, label, value string) {
	h.raw(`<div class="card">`)
	h.tag("div", "label", label)
	h.tag("div", "value", value)
	h.raw(`</div>`)
}

func summaryCards(h *htmlWriter, s domain.ExecutiveStats, q domain.DataQualityStats) {
	h.raw(`<section class="cards">`)
	card(h, "Total Tasks", formatInt(s.TotalTasks))
	card(h, "Completed", formatInt(s.CompletedTasks))
	card(h, "Completion Rate", formatPercent(s.CompletionRate))
	card(h, "Avg Task Duration", formatHours(s.AvgTaskDuration))
	card(h, "Utilization", formatPercent(s.OverallUtilizationRate))
	card(h, "Top Department", s.TopPerformingDept)
	card(h, "Least Performing", s.LeastPerformingDept)
	card(h, "Rework Rate", formatPercent(s.ReworkRate))
	card(h, "Form Completeness", formatPercent(q.FormCompletenessScore))
	card(h, "Missing Time Entries", formatPercent(q.MissingTimeEntries))
	h.raw(`</section>`)
}

func tableHead(h *htmlWriter, title string, cols ...string) {
	h.raw(`<section><h2>`)
	h.text(title)
	h.raw(`</h2><table><thead><tr>`)
	for _, c := range cols {
		h.raw(`<th>`)
		h.text(c)
		h.raw(`</th>`)
	}
	h.raw(`</tr></thead><tbody>`)
}

func row(h *htmlWriter, cells ...string) {
	h.raw(`<tr>`)
	for _, c := range cells {
		h.raw(`<td>`)
		h.text(c)
		h.raw(`</td>`)
	}
	h.raw(`</tr>`)
}

func tableEnd(h *htmlWriter) {
	h.raw(`</tbody></table></section>`)
}

func leaderboard(h *htmlWriter, rows []domain.EmployeeStats) {
	tableHead(h, "Employee Leaderboard", "Employee", "Completed Tasks", "Avg Duration", "Utilization")
	for _, e := range rows {
		row(h, e.Name, formatInt(e.CompletedTasks), formatHours(e.AvgTaskDuration), formatPercent(e.UtilizationRate))
	}
	tableEnd(h)
}

func departments(h *htmlWriter, rows []domain.DepartmentStats) {
	tableHead(h, "Departmental Performance", "Department", "Tasks", "Completion", "Avg Duration", "Utilization")
	for _, d := range rows {
		if d.TotalTasks == 0 {
			continue
		}
		row(h, string(d.Department), formatInt(d.TotalTasks), formatPercent(d.CompletionRate),
			formatHours(d.AvgTaskDuration), formatPercent(d.UtilizationRate))
	}
	tableEnd(h)
}

func dailyTrend(h *htmlWriter, points []domain.DailyTrendPoint) {
	tableHead(h, "Last 7 Days", "Day", "Total Tasks", "Completed Tasks")
	for _, p := range points {
		row(h, p.Label, formatInt(p.TotalTasks), formatInt(p.CompletedTasks))
	}
	tableEnd(h)
}

func statusDistribution(h *htmlWriter, points []domain.TaskStatusDistributionPoint) {
	tableHead(h, "Task Status", "Status", "Count")
	for _, p := range points {
		row(h, string(p.Status), formatInt(p.Count))
	}
	tableEnd(h)
}

func insightSection(h *htmlWriter, p DashboardPage) {
	h.raw(`<section><h2>AI Insights</h2>`)
	if !p.InsightsEnabled {
		h.raw(`<p class="muted">Set GEMINI_API_KEY or ANTHROPIC_API_KEY to enable insights.</p></section>`)
		return
	}
	h.rawf(`<button hx-post="%s" hx-target="#insights" hx-swap="innerHTML" hx-disabled-elt="this">Generate insights</button>`,
		insightsURL(p.Filter))
	h.raw(`<div id="insights"></div>`)
	if len(p.History) > 0 {
		h.raw(`<h3>Previous summaries</h3><ul>`)
		for _, run := range p.History {
			h.raw(`<li>`)
			h.text(run.CreatedAt.Format("Jan 2, 15:04"))
			h.raw(` <span class="muted">`)
			h.text(run.Provider)
			h.raw(`</span> `)
			h.text(util.Truncate(run.Summary, 120))
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}
	h.raw(`</section>`)
}

func recentLogs(h *htmlWriter, p DashboardPage) {
	title := "Employee Activity (" + formatInt(p.FilteredLen) + " of " + formatInt(p.TotalLogs) + " logs)"
	tableHead(h, title, "Date", "Employee", "Department", "Task", "Status", "Hours", "Rating", "Blockers")
	logs := p.RecentLogs
	if len(logs) > recentLogRows {
		logs = logs[:recentLogRows]
	}
	for _, l := range logs {
		row(h, util.FormatDateHuman(l.Date), l.EmployeeName, string(l.Department),
			util.Truncate(l.TaskDescription, 60), string(l.TaskStatus), formatHours(l.Hours),
			formatInt(l.ProductivityRating), l.Blockers)
	}
	if len(logs) == 0 {
		h.raw(`<tr><td colspan="8" class="muted">No logs match the current filters.</td></tr>`)
	}
	tableEnd(h)
}

// Insights renders the result of an insight request into the panel.
func Insights(p InsightPanel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if p.Error != "" {
			h.tag("p", "error", p.Error)
			if p.Details != "" {
				h.tag("p", "muted", p.Details)
			}
			return h.err
		}
		h.tag("div", "insights", p.Text)
		h.raw(`<p class="muted">`)
		h.text(p.Provider + " analyzed " + formatInt(p.LogCount) + " logs")
		h.raw(`</p>`)
		return h.err
	})
}
