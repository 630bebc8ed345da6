package ports

import (
	"context"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

// MetricsExporter exports dashboard metrics to an external observability system.
type MetricsExporter interface {
	// RecordSubmission counts an accepted daily submission.
	RecordSubmission(ctx context.Context, m *SubmissionMetrics) error
	// ExportKPIs publishes the latest unfiltered KPI snapshot.
	ExportKPIs(ctx context.Context, kpi *domain.KPIData) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// SubmissionMetrics describes one accepted daily submission.
type SubmissionMetrics struct {
	Department domain.Department
	TaskCount  int
	Hours      float64
	Persisted  bool
}
