package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/emiliopalmerini/worklog/internal/export"
)

func (s *Server) handleAPIExportLogs(w http.ResponseWriter, r *http.Request) {
	filter, _, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatCSV
	}

	logs := s.logs.Filtered(filter)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, logs); err != nil {
		if errors.Is(err, export.ErrNoData) {
			http.Error(w, "No data to export.", http.StatusNotFound)
			return
		}
		if errors.Is(err, export.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordExport(format)
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(format, s.logs.Today())))
	_, _ = w.Write(buf.Bytes())
}
