package templates

import (
	"fmt"
	"net/url"

	"github.com/emiliopalmerini/worklog/internal/util"
)

func formatPercent(v float64) string {
	return util.FormatPercent(v)
}

func formatHours(h float64) string {
	return util.FormatHours(h)
}

func formatInt(n int) string {
	return fmt.Sprintf("%d", n)
}

func (f FilterState) query() url.Values {
	q := url.Values{}
	if f.Start != "" {
		q.Set("start", f.Start)
	}
	if f.End != "" {
		q.Set("end", f.End)
	}
	if f.Department != "" {
		q.Set("department", f.Department)
	}
	if f.Employee != "" {
		q.Set("employee", f.Employee)
	}
	return q
}

// exportURL links to the export of the current view.
func exportURL(format string, f FilterState) string {
	q := f.query()
	q.Set("format", format)
	return "/api/export/logs?" + q.Encode()
}

func insightsURL(f FilterState) string {
	if q := f.query().Encode(); q != "" {
		return "/api/insights?" + q
	}
	return "/api/insights"
}
