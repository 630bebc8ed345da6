package otel

import (
	"context"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordSubmission(ctx context.Context, m *ports.SubmissionMetrics) error {
	return nil
}

func (e *NoOpExporter) ExportKPIs(ctx context.Context, k *domain.KPIData) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
