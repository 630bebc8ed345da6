package ports

import (
	"context"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

// LogRepository is the durable log store. Callers keep the in-memory
// collection as the source of truth and treat failures as non-fatal.
type LogRepository interface {
	LoadAll(ctx context.Context) ([]domain.ProductivityLog, error)
	// AppendAll stores every log or none of them.
	AppendAll(ctx context.Context, logs []domain.ProductivityLog) error
}

// InsightRunRepository keeps a history of generated summaries.
type InsightRunRepository interface {
	Save(ctx context.Context, run *domain.InsightRun) error
	ListRecent(ctx context.Context, limit int) ([]domain.InsightRun, error)
}
