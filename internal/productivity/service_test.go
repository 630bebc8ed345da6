package productivity

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

var fixedNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func newTestService(repo ports.LogRepository, opts ...Option) *Service {
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("new-%d", n) }),
	}
	return NewService(repo, append(base, opts...)...)
}

func submission() domain.DailyLogSubmission {
	return domain.DailyLogSubmission{
		EmployeeName:       "Samuel Onyeocha",
		EmployeeID:         "AIS/015",
		Department:         domain.DeptIT,
		Date:               fixedNow,
		Hours:              8,
		ProductivityRating: 5,
		Tasks: []domain.TaskItem{
			{TaskDescription: "Patched servers", TaskCategory: domain.CategoryIT, TaskStatus: domain.StatusComplete},
			{TaskDescription: "Fixed printer", TaskCategory: domain.CategoryMaintenance, TaskStatus: domain.StatusIncomplete},
		},
	}
}

func TestService_LoadMergesSeedAndStored(t *testing.T) {
	override := SeedLogs(fixedNow)[0]
	override.TaskDescription = "edited"
	stored := domain.ProductivityLog{
		ID: "stored-1", EmployeeName: "Ada", EmployeeID: "X", Department: domain.DeptHSE,
		Date: domain.DateOf(fixedNow).AddDate(0, 0, 1), TaskStatus: domain.StatusComplete, Hours: 1,
	}
	repo := &MockLogRepository{
		LoadAllFunc: func(ctx context.Context) ([]domain.ProductivityLog, error) {
			return []domain.ProductivityLog{override, stored}, nil
		},
	}

	svc := newTestService(repo)
	svc.Load(context.Background())
	logs := svc.Logs()

	if len(logs) != len(seedEntries)+1 {
		t.Fatalf("expected %d logs, got %d", len(seedEntries)+1, len(logs))
	}
	if logs[0].ID != "stored-1" {
		t.Errorf("expected future-dated stored log first, got %s", logs[0].ID)
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].Date.After(logs[i-1].Date) {
			t.Fatalf("logs not sorted descending at %d", i)
		}
	}

	found := false
	for _, l := range logs {
		if l.ID == override.ID {
			found = true
			if l.TaskDescription != "edited" {
				t.Errorf("expected stored version to win, got %q", l.TaskDescription)
			}
		}
	}
	if !found {
		t.Error("overridden seed log missing")
	}
}

func TestService_LoadSurvivesStoreFailure(t *testing.T) {
	repo := &MockLogRepository{
		LoadAllFunc: func(ctx context.Context) ([]domain.ProductivityLog, error) {
			return nil, errors.New("disk on fire")
		},
	}
	svc := newTestService(repo)
	svc.Load(context.Background())

	if got := len(svc.Logs()); got != len(seedEntries) {
		t.Errorf("expected seed logs only, got %d", got)
	}
}

func TestService_LoadWithoutSeed(t *testing.T) {
	svc := newTestService(&MockLogRepository{}, WithSeed(false))
	svc.Load(context.Background())
	if got := len(svc.Logs()); got != 0 {
		t.Errorf("expected empty collection, got %d", got)
	}
}

func TestService_Submit(t *testing.T) {
	var persisted []domain.ProductivityLog
	repo := &MockLogRepository{
		AppendAllFunc: func(ctx context.Context, logs []domain.ProductivityLog) error {
			persisted = append(persisted, logs...)
			return nil
		},
	}
	svc := newTestService(repo, WithSeed(false))
	svc.Load(context.Background())

	added, err := svc.Submit(context.Background(), submission())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(added))
	}
	for _, l := range added {
		if l.Hours != 4 {
			t.Errorf("expected 4 hours per task, got %v", l.Hours)
		}
	}
	if added[0].ID != "new-1" || added[1].ID != "new-2" {
		t.Errorf("unexpected ids: %s, %s", added[0].ID, added[1].ID)
	}
	if len(persisted) != 2 {
		t.Errorf("expected 2 persisted logs, got %d", len(persisted))
	}
	if len(svc.Logs()) != 2 {
		t.Errorf("expected collection of 2, got %d", len(svc.Logs()))
	}
}

func TestService_SubmitRejectsInvalid(t *testing.T) {
	called := false
	repo := &MockLogRepository{
		AppendAllFunc: func(ctx context.Context, logs []domain.ProductivityLog) error {
			called = true
			return nil
		},
	}
	svc := newTestService(repo, WithSeed(false))

	sub := submission()
	sub.Tasks[1].TaskDescription = ""
	_, err := svc.Submit(context.Background(), sub)
	if !errors.Is(err, domain.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if called {
		t.Error("expected nothing persisted")
	}
	if len(svc.Logs()) != 0 {
		t.Error("expected no logs added, all-or-nothing")
	}
}

func TestService_SubmitKeepsLogsWhenPersistFails(t *testing.T) {
	repo := &MockLogRepository{
		AppendAllFunc: func(ctx context.Context, logs []domain.ProductivityLog) error {
			return errors.New("read-only")
		},
	}
	metrics := &recordingExporter{}
	svc := newTestService(repo, WithSeed(false), WithMetrics(metrics))

	if _, err := svc.Submit(context.Background(), submission()); err != nil {
		t.Fatalf("expected persistence failure to be swallowed, got %v", err)
	}
	if len(svc.Logs()) != 2 {
		t.Errorf("expected in-memory logs to remain, got %d", len(svc.Logs()))
	}
	if len(metrics.submissions) != 1 || metrics.submissions[0].Persisted {
		t.Errorf("expected one unpersisted submission recorded, got %+v", metrics.submissions)
	}
}

func TestService_SubmitKeepsCollectionSortedByDate(t *testing.T) {
	today := domain.DateOf(fixedNow)
	stored := []domain.ProductivityLog{
		{ID: "old", EmployeeName: "Ada", EmployeeID: "X", Department: domain.DeptHSE, Date: today.AddDate(0, 0, -10), TaskStatus: domain.StatusComplete, Hours: 1},
		{ID: "future", EmployeeName: "Ada", EmployeeID: "X", Department: domain.DeptHSE, Date: today.AddDate(0, 0, 2), TaskStatus: domain.StatusComplete, Hours: 1},
	}
	repo := &MockLogRepository{
		LoadAllFunc: func(ctx context.Context) ([]domain.ProductivityLog, error) {
			return stored, nil
		},
	}
	svc := newTestService(repo)
	svc.Load(context.Background())
	before := len(svc.Logs())

	sub := submission()
	sub.Date = today.AddDate(0, 0, -3)
	added, err := svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	logs := svc.Logs()
	if len(logs) != before+len(added) {
		t.Fatalf("expected %d logs, got %d", before+len(added), len(logs))
	}
	if logs[0].ID != "future" || logs[len(logs)-1].ID != "old" {
		t.Errorf("expected future first and old last, got %s .. %s", logs[0].ID, logs[len(logs)-1].ID)
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].Date.After(logs[i-1].Date) {
			t.Fatalf("logs not sorted descending at %d: %s after %s", i, logs[i].DateKey(), logs[i-1].DateKey())
		}
	}

	// Submitted logs lead their day, in task order.
	first := -1
	for i, l := range logs {
		if l.Date.Equal(sub.Date) {
			first = i
			break
		}
	}
	if first < 0 {
		t.Fatal("submitted day not found")
	}
	if logs[first].ID != "new-1" || logs[first+1].ID != "new-2" {
		t.Errorf("expected new-1, new-2 first on their day, got %s, %s", logs[first].ID, logs[first+1].ID)
	}
	sameDay := 0
	for _, l := range logs {
		if l.Date.Equal(sub.Date) {
			sameDay++
		}
	}
	if sameDay <= len(added) {
		t.Fatalf("fixture needs existing logs on %s, found %d in total", sub.Date.Format(domain.DateLayout), sameDay)
	}
}

func TestService_SubmitIsVisibleToNextDashboard(t *testing.T) {
	svc := newTestService(&MockLogRepository{}, WithSeed(false))

	before := svc.Dashboard(domain.Filter{})
	if before.KPI.ExecutiveSummary.TotalTasks != 0 {
		t.Fatalf("expected empty dashboard")
	}

	if _, err := svc.Submit(context.Background(), submission()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	after := svc.Dashboard(domain.Filter{Department: string(domain.DeptIT)})
	es := after.KPI.ExecutiveSummary
	if es.TotalTasks != 2 || es.CompletedTasks != 1 {
		t.Errorf("unexpected summary: %+v", es)
	}
	if es.CompletionRate != 50 {
		t.Errorf("expected 50%% completion, got %v", es.CompletionRate)
	}
	if es.OverallUtilizationRate != 100 {
		t.Errorf("expected 100%% utilization, got %v", es.OverallUtilizationRate)
	}
	if len(after.KPI.DailyTrend) != domain.TrendDays {
		t.Errorf("expected %d trend points", domain.TrendDays)
	}
	if after.KPI.DailyTrend[domain.TrendDays-1].TotalTasks != 2 {
		t.Errorf("expected today's trend to count 2 tasks")
	}
	if after.TotalLogs != 2 {
		t.Errorf("expected TotalLogs 2, got %d", after.TotalLogs)
	}
}

func TestService_DashboardUniqueValuesIgnoreFilter(t *testing.T) {
	svc := newTestService(&MockLogRepository{})
	svc.Load(context.Background())

	d := svc.Dashboard(domain.Filter{EmployeeName: "David Shadreck"})
	if len(d.Unique.Employees) != len(employeePool) {
		t.Errorf("expected %d employees, got %v", len(employeePool), d.Unique.Employees)
	}
	for _, l := range d.Logs {
		if l.EmployeeName != "David Shadreck" {
			t.Errorf("filter leaked %s", l.EmployeeName)
		}
	}
}

func TestService_ConcurrentReadsAndWrites(t *testing.T) {
	svc := newTestService(&MockLogRepository{}, WithSeed(false), WithIDGenerator(func() string {
		return fmt.Sprintf("id-%d", rand.Int64())
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.Submit(context.Background(), submission())
		}()
		go func() {
			defer wg.Done()
			d := svc.Dashboard(domain.Filter{})
			if d.KPI.ExecutiveSummary.TotalTasks%2 != 0 {
				t.Errorf("observed a partial submission: %d tasks", d.KPI.ExecutiveSummary.TotalTasks)
			}
		}()
	}
	wg.Wait()

	if got := len(svc.Logs()); got != 16 {
		t.Errorf("expected 16 logs, got %d", got)
	}
}

func TestService_PublishKPIs(t *testing.T) {
	metrics := &recordingExporter{}
	svc := newTestService(&MockLogRepository{}, WithMetrics(metrics))
	svc.Load(context.Background())

	if err := svc.PublishKPIs(context.Background()); err != nil {
		t.Fatalf("PublishKPIs failed: %v", err)
	}
	if len(metrics.kpis) != 1 {
		t.Fatalf("expected one export, got %d", len(metrics.kpis))
	}
	if metrics.kpis[0].ExecutiveSummary.TotalTasks != len(seedEntries) {
		t.Errorf("expected unfiltered totals, got %d", metrics.kpis[0].ExecutiveSummary.TotalTasks)
	}
}

func TestService_RunPublisherStopsOnCancel(t *testing.T) {
	metrics := &recordingExporter{}
	svc := newTestService(&MockLogRepository{}, WithMetrics(metrics))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunPublisher(ctx, time.Hour) }()

	deadline := time.After(2 * time.Second)
	for metrics.kpiCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("publisher never exported")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop")
	}
}

func TestService_RunPublisherNonPositiveIntervalPublishesOnce(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		t.Run(interval.String(), func(t *testing.T) {
			metrics := &recordingExporter{}
			svc := newTestService(&MockLogRepository{}, WithMetrics(metrics))
			svc.Load(context.Background())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- svc.RunPublisher(ctx, interval) }()

			select {
			case err := <-done:
				t.Fatalf("publisher returned before cancel: %v", err)
			case <-time.After(50 * time.Millisecond):
			}
			cancel()

			select {
			case err := <-done:
				if err != nil {
					t.Errorf("expected nil on cancel, got %v", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("publisher did not stop")
			}
			if got := metrics.kpiCount(); got != 1 {
				t.Errorf("expected exactly one export, got %d", got)
			}
		})
	}
}

type recordingExporter struct {
	mu          sync.Mutex
	submissions []ports.SubmissionMetrics
	kpis        []domain.KPIData
}

func (r *recordingExporter) RecordSubmission(ctx context.Context, m *ports.SubmissionMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, *m)
	return nil
}

func (r *recordingExporter) ExportKPIs(ctx context.Context, kpi *domain.KPIData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kpis = append(r.kpis, *kpi)
	return nil
}

func (r *recordingExporter) Close(ctx context.Context) error { return nil }

func (r *recordingExporter) kpiCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.kpis)
}
