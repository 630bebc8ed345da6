package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/database"
)

const streamRetries = 2

type LogRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db, now: time.Now}
}

func (r *LogRepository) LoadAll(ctx context.Context) ([]domain.ProductivityLog, error) {
	return database.WithRetry(ctx, streamRetries, func() ([]domain.ProductivityLog, error) {
		return r.loadAll(ctx)
	})
}

func (r *LogRepository) loadAll(ctx context.Context) ([]domain.ProductivityLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_name, employee_id, department, log_date, task_category,
		       task_description, task_status, hours, productivity_rating, blockers,
		       tasks_carried_over
		FROM productivity_logs
		ORDER BY log_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	logs := make([]domain.ProductivityLog, 0)
	for rows.Next() {
		var (
			l       domain.ProductivityLog
			logDate string
		)
		if err := rows.Scan(
			&l.ID, &l.EmployeeName, &l.EmployeeID, &l.Department, &logDate,
			&l.TaskCategory, &l.TaskDescription, &l.TaskStatus, &l.Hours,
			&l.ProductivityRating, &l.Blockers, &l.TasksCarriedOver,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		date, err := domain.ParseDate(logDate)
		if err != nil {
			return nil, fmt.Errorf("log %s: %w", l.ID, err)
		}
		l.Date = date
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", err)
	}
	return logs, nil
}

// AppendAll inserts logs in one transaction. Existing ids are overwritten.
func (r *LogRepository) AppendAll(ctx context.Context, logs []domain.ProductivityLog) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO productivity_logs (
			id, employee_name, employee_id, department, log_date, task_category,
			task_description, task_status, hours, productivity_rating, blockers,
			tasks_carried_over, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	createdAt := r.now().UTC().Format(time.RFC3339Nano)
	for _, l := range logs {
		if _, err := stmt.ExecContext(ctx,
			l.ID, l.EmployeeName, l.EmployeeID, string(l.Department), l.DateKey(),
			string(l.TaskCategory), l.TaskDescription, string(l.TaskStatus), l.Hours,
			l.ProductivityRating, l.Blockers, l.TasksCarriedOver, createdAt,
		); err != nil {
			return fmt.Errorf("failed to insert log %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit logs: %w", err)
	}
	return nil
}

// Count returns the number of stored logs.
func (r *LogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM productivity_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return n, nil
}
