package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsByPattern(t *testing.T) {
	m := New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/logs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := m.Middleware(mux)

	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs?department=IT", nil))
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /api/logs", "418"))
	if got != 2 {
		t.Errorf("expected 2 requests recorded, got %v", got)
	}
	if v := testutil.ToFloat64(m.HTTPRequestsInFlight); v != 0 {
		t.Errorf("expected no requests in flight, got %v", v)
	}
}

func TestRecordInsightAndExport(t *testing.T) {
	m := New()
	m.RecordInsight("gemini:gemini-2.5-flash", true)
	m.RecordInsight("gemini:gemini-2.5-flash", false)
	m.RecordExport("csv")

	if v := testutil.ToFloat64(m.InsightRequests.WithLabelValues("gemini:gemini-2.5-flash", "failure")); v != 1 {
		t.Errorf("expected 1 failure, got %v", v)
	}
	if v := testutil.ToFloat64(m.ExportsTotal.WithLabelValues("csv")); v != 1 {
		t.Errorf("expected 1 csv export, got %v", v)
	}
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New()
	m.RecordExport("json")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), `worklog_exports_total{format="json"} 1`) {
		t.Errorf("expected exports counter in output, got:\n%s", rec.Body.String())
	}
}
