package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/export"
	"github.com/emiliopalmerini/worklog/internal/productivity"
	"github.com/emiliopalmerini/worklog/internal/shared/middleware"
)

const maxSubmissionBytes = 1 << 20

func (s *Server) handleAPIKPI(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	dash := s.logs.Dashboard(filter)
	writeJSON(w, http.StatusOK, map[string]any{
		"kpi":         toKPIJSON(dash.KPI),
		"filtered":    len(dash.Logs),
		"total":       dash.TotalLogs,
		"generatedAt": dash.GeneratedAt,
	})
}

func (s *Server) handleAPIListLogs(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, export.Records(s.logs.Filtered(filter)))
}

func (s *Server) handleAPISubmitLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req productivity.SubmissionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	sub, err := req.ToSubmission()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid submission", err.Error())
		return
	}

	added, err := s.logs.Submit(ctx, sub)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  "Invalid submission",
				Fields: verr.Fields,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save logs", err.Error())
		return
	}

	if middleware.IsHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
	}
	writeJSON(w, http.StatusCreated, export.Records(added))
}

func (s *Server) handleAPIEmployees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.UniqueEmployees(s.logs.Logs()))
}
