package cli

import (
	"context"
	"testing"
	"time"

	"github.com/emiliopalmerini/worklog/internal/adapters/turso"
	"github.com/emiliopalmerini/worklog/internal/domain"
)

func TestSeedLogs(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	n, err := seedLogs(ctx, app.Repos.Logs, newRand(42), 25, 3, today)
	if err != nil {
		t.Fatalf("seedLogs() error = %v", err)
	}
	if n != 25 {
		t.Errorf("seedLogs() = %d, want 25", n)
	}

	count, err := turso.NewLogRepository(app.DB).Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 25 {
		t.Errorf("stored %d logs, want 25", count)
	}

	stored, err := app.Repos.Logs.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	earliest := today.AddDate(0, 0, -2)
	for _, l := range stored {
		if l.Date.Before(earliest) || l.Date.After(today) {
			t.Errorf("log %s dated %s, outside the 3 day window", l.ID, l.Date.Format(domain.DateLayout))
		}
	}
}

func TestNewRand_Reproducible(t *testing.T) {
	a, b := newRand(7), newRand(7)
	for range 5 {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed should yield the same sequence")
		}
	}
}
