package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

type InsightRunRepository struct {
	db *sql.DB
}

func NewInsightRunRepository(db *sql.DB) *InsightRunRepository {
	return &InsightRunRepository{db: db}
}

func (r *InsightRunRepository) Save(ctx context.Context, run *domain.InsightRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO insight_runs (id, provider, model, log_count, input_tokens, output_tokens, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Provider, run.Model, run.LogCount, run.InputTokens, run.OutputTokens,
		run.Summary, run.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save insight run: %w", err)
	}
	return nil
}

func (r *InsightRunRepository) ListRecent(ctx context.Context, limit int) ([]domain.InsightRun, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider, model, log_count, input_tokens, output_tokens, summary, created_at
		FROM insight_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list insight runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := make([]domain.InsightRun, 0)
	for rows.Next() {
		var (
			run       domain.InsightRun
			createdAt string
		)
		if err := rows.Scan(&run.ID, &run.Provider, &run.Model, &run.LogCount,
			&run.InputTokens, &run.OutputTokens, &run.Summary, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan insight run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate insight runs: %w", err)
	}
	return runs, nil
}
