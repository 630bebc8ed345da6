package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/productivity"
	"github.com/emiliopalmerini/worklog/internal/shared/middleware"
	"github.com/emiliopalmerini/worklog/internal/web/templates"
)

const dashboardHistoryLimit = 5

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, state, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		dash    *productivity.Dashboard
		history []domain.InsightRun
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dash = s.logs.Dashboard(filter)
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.insights.History(gctx, dashboardHistoryLimit)
		if err != nil {
			logger.FromContext(gctx).Warn("failed to load insight history", logger.Error(err))
		}
		return nil
	})
	_ = g.Wait()

	page := templates.DashboardPage{
		Filter:          state,
		KPI:             dash.KPI,
		Employees:       dash.Unique.Employees,
		Departments:     dash.Unique.Departments,
		RecentLogs:      dash.Logs,
		FilteredLen:     len(dash.Logs),
		TotalLogs:       dash.TotalLogs,
		InsightsEnabled: s.insights.Available(),
		History:         history,
		GeneratedAt:     dash.GeneratedAt,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// HTMX partial: render only the dashboard body
	if middleware.IsHTMX(r) {
		_ = templates.DashboardContent(page).Render(ctx, w)
		return
	}
	_ = templates.Dashboard(page).Render(ctx, w)
}
