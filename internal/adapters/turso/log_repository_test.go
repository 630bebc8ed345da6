package turso_test

import (
	"context"
	"testing"
	"time"

	"github.com/emiliopalmerini/worklog/internal/adapters/turso"
	"github.com/emiliopalmerini/worklog/internal/domain"
)

func TestLogRepository_AppendAndLoad(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLogRepository(db)
	ctx := context.Background()

	logs, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected empty store, got %d", len(logs))
	}

	older := sampleLog("log-1", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	newer := sampleLog("log-2", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	newer.TaskStatus = domain.StatusInProgress
	newer.Blockers = "Minor network disruptions."

	if err := repo.AppendAll(ctx, []domain.ProductivityLog{older, newer}); err != nil {
		t.Fatalf("AppendAll failed: %v", err)
	}

	logs, err = repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0] != newer {
		t.Errorf("expected newest first:\n got  %+v\n want %+v", logs[0], newer)
	}
	if logs[1] != older {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", logs[1], older)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("expected count 2, got %d (%v)", n, err)
	}
}

func TestLogRepository_CancelledAppendWritesNothing(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLogRepository(db)
	ctx := context.Background()

	good := sampleLog("log-1", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := repo.AppendAll(cancelled, []domain.ProductivityLog{good}); err == nil {
		t.Fatal("expected cancelled context to fail")
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no partial writes, got %d rows", n)
	}
}

func TestLogRepository_AppendAllEmpty(t *testing.T) {
	db := testDB(t)
	repo := turso.NewLogRepository(db)
	if err := repo.AppendAll(context.Background(), nil); err != nil {
		t.Errorf("expected nil error for empty batch, got %v", err)
	}
}

func TestInsightRunRepository(t *testing.T) {
	db := testDB(t)
	repo := turso.NewInsightRunRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		run := &domain.InsightRun{
			ID:        id,
			Provider:  "gemini",
			Model:     "gemini-2.5-flash",
			LogCount:  10 + i,
			Summary:   "## Summary",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Save(ctx, run); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	runs, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-3" || runs[1].ID != "run-2" {
		t.Errorf("expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("unexpected created_at: %s", runs[0].CreatedAt)
	}
}
