package productivity

import (
	"math/rand/v2"
	"testing"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

func TestSeedLogs(t *testing.T) {
	logs := SeedLogs(fixedNow)
	if len(logs) != 14 {
		t.Fatalf("expected 14 seed logs, got %d", len(logs))
	}

	today := domain.DateOf(fixedNow)
	oldest := today.AddDate(0, 0, -6)
	ids := make(map[string]bool)
	for _, l := range logs {
		if l.Date.Before(oldest) || l.Date.After(today) {
			t.Errorf("seed log %s dated %s outside the last week", l.ID, l.DateKey())
		}
		if ids[l.ID] {
			t.Errorf("duplicate seed id %s", l.ID)
		}
		ids[l.ID] = true
		if !IsSeedID(l.ID) {
			t.Errorf("IsSeedID(%s) = false", l.ID)
		}
	}

	// Ids are stable across calls.
	again := SeedLogs(fixedNow.AddDate(0, 0, 3))
	if again[0].ID != logs[0].ID {
		t.Error("seed ids changed between calls")
	}
	if IsSeedID("not-a-seed") {
		t.Error("expected arbitrary id not to be a seed id")
	}
}

func TestGenerator_Log(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(1, 2)))

	for range 200 {
		l := g.Log(fixedNow)
		if l.Hours < 4 || l.Hours > 8 {
			t.Fatalf("hours out of range: %v", l.Hours)
		}
		if l.Hours*2 != float64(int(l.Hours*2)) {
			t.Fatalf("hours not in half-hour steps: %v", l.Hours)
		}
		if l.ProductivityRating < 3 || l.ProductivityRating > 5 {
			t.Fatalf("rating out of range: %d", l.ProductivityRating)
		}
		if l.Blockers != "" && l.Blockers != seedBlocker {
			t.Fatalf("unexpected blocker %q", l.Blockers)
		}
		if !l.Department.Valid() || !l.TaskCategory.Valid() || !l.TaskStatus.Valid() {
			t.Fatalf("invalid enum value in %+v", l)
		}
		if !l.Date.Equal(domain.DateOf(fixedNow)) {
			t.Fatalf("unexpected date %s", l.DateKey())
		}
	}
}

func TestGenerator_Logs(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(3, 4)))
	logs := g.Logs(50, 7, fixedNow)
	if len(logs) != 50 {
		t.Fatalf("expected 50 logs, got %d", len(logs))
	}

	today := domain.DateOf(fixedNow)
	for _, l := range logs {
		if l.Date.After(today) || l.Date.Before(today.AddDate(0, 0, -6)) {
			t.Errorf("log dated %s outside window", l.DateKey())
		}
	}
}
