package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emiliopalmerini/worklog/internal/insight"
	"github.com/emiliopalmerini/worklog/internal/shared/middleware"
	"github.com/emiliopalmerini/worklog/internal/web/templates"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type insightResponse struct {
	Insights string `json:"insights"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	LogCount int    `json:"logCount"`
}

type insightRunJSON struct {
	ID           string `json:"id"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	LogCount     int    `json:"logCount"`
	InputTokens  int    `json:"inputTokens"`
	OutputTokens int    `json:"outputTokens"`
	Summary      string `json:"summary"`
	CreatedAt    string `json:"createdAt"`
}

// insightFailure maps a Generate error to a status and user-facing text.
func insightFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, insight.ErrInsightUnavailable):
		return http.StatusInternalServerError, "API Key Not Found",
			"Set GEMINI_API_KEY (or API_KEY) or ANTHROPIC_API_KEY on the server."
	case errors.Is(err, insight.ErrNoLogs):
		return http.StatusBadRequest, "No logs to analyze",
			"The current filters match no productivity logs."
	default:
		return http.StatusInternalServerError, "Failed to generate insights.", insight.Details(err)
	}
}

func (s *Server) handleAPIInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, _, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	res, err := s.insights.Generate(ctx, s.logs.Filtered(filter))
	if s.metrics != nil {
		s.metrics.RecordInsight(s.insights.ProviderID(), err == nil)
	}

	if err != nil {
		status, msg, details := insightFailure(err)
		// htmx only swaps 2xx responses, so fragments carry the error inline.
		if middleware.IsHTMX(r) {
			_ = templates.Insights(templates.InsightPanel{Error: msg, Details: details}).Render(ctx, w)
			return
		}
		writeError(w, status, msg, details)
		return
	}

	if middleware.IsHTMX(r) {
		_ = templates.Insights(templates.InsightPanel{
			Text:     res.Text,
			Provider: res.Provider,
			LogCount: res.LogCount,
		}).Render(ctx, w)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{
		Insights: res.Text,
		Provider: res.Provider,
		Model:    res.Model,
		LogCount: res.LogCount,
	})
}

func (s *Server) handleAPIInsightHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxHistoryLimit)
	}

	runs, err := s.insights.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load insight history", err.Error())
		return
	}

	out := make([]insightRunJSON, len(runs))
	for i, run := range runs {
		out[i] = insightRunJSON{
			ID:           run.ID,
			Provider:     run.Provider,
			Model:        run.Model,
			LogCount:     run.LogCount,
			InputTokens:  run.InputTokens,
			OutputTokens: run.OutputTokens,
			Summary:      run.Summary,
			CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
