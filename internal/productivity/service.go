// Package productivity owns the in-memory log collection and feeds it
// through the filter and KPI engine.
package productivity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

// Dashboard is everything a view needs for one filter selection.
type Dashboard struct {
	Filter      domain.Filter
	Logs        []domain.ProductivityLog
	KPI         domain.KPIData
	Unique      domain.UniqueValues
	TotalLogs   int
	GeneratedAt time.Time
}

// Service guards the collection. Readers work on snapshots so the engine
// always sees a fully formed collection.
type Service struct {
	repo    ports.LogRepository
	metrics ports.MetricsExporter
	log     logger.Logger
	now     func() time.Time
	newID   func() string
	seed    bool

	mu   sync.RWMutex
	logs []domain.ProductivityLog
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMetrics(m ports.MetricsExporter) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithSeed controls whether Load merges the demo collection.
func WithSeed(enabled bool) Option {
	return func(s *Service) { s.seed = enabled }
}

func NewService(repo ports.LogRepository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		log:   logger.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
		seed:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the reference date for the daily trend.
func (s *Service) Today() time.Time {
	return domain.DateOf(s.now())
}

// Load replaces the collection with seed logs merged with stored logs.
// Duplicate ids keep the stored version. A failing store is logged and the
// collection falls back to the seed logs.
func (s *Service) Load(ctx context.Context) {
	var merged []domain.ProductivityLog
	if s.seed {
		merged = append(merged, SeedLogs(s.Today())...)
	}

	stored, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.log.Warn("failed to load stored logs, using seed data only", logger.Error(err))
	} else {
		merged = append(merged, stored...)
	}

	logs := dedupe(merged)
	domain.SortByDateDesc(logs)

	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()

	s.log.Info("loaded productivity logs",
		logger.Int("total", len(logs)),
		logger.Int("stored", len(stored)),
	)
}

// dedupe keeps one log per id, the last occurrence winning, at the position
// of its first occurrence.
func dedupe(logs []domain.ProductivityLog) []domain.ProductivityLog {
	index := make(map[string]int, len(logs))
	out := make([]domain.ProductivityLog, 0, len(logs))
	for _, l := range logs {
		if i, ok := index[l.ID]; ok {
			out[i] = l
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

// Submit validates and expands a daily submission, adds every resulting log
// to the collection and persists them best-effort.
func (s *Service) Submit(ctx context.Context, sub domain.DailyLogSubmission) ([]domain.ProductivityLog, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	added := sub.Expand(s.newID)

	s.mu.Lock()
	logs := make([]domain.ProductivityLog, 0, len(added)+len(s.logs))
	logs = append(logs, added...)
	logs = append(logs, s.logs...)
	domain.SortByDateDesc(logs)
	s.logs = logs
	s.mu.Unlock()

	persisted := true
	if err := s.repo.AppendAll(ctx, added); err != nil {
		persisted = false
		s.log.Error("failed to persist submitted logs",
			logger.String("employee", sub.EmployeeName),
			logger.Int("count", len(added)),
			logger.Error(err),
		)
	}

	if s.metrics != nil {
		if err := s.metrics.RecordSubmission(ctx, &ports.SubmissionMetrics{
			Department: sub.Department,
			TaskCount:  len(added),
			Hours:      sub.Hours,
			Persisted:  persisted,
		}); err != nil {
			s.log.Warn("failed to record submission metrics", logger.Error(err))
		}
	}

	s.log.Info("accepted daily submission",
		logger.String("employee", sub.EmployeeName),
		logger.String("department", string(sub.Department)),
		logger.Int("tasks", len(added)),
		logger.Bool("persisted", persisted),
	)
	return added, nil
}

// Logs returns a snapshot of the whole collection, newest first.
func (s *Service) Logs() []domain.ProductivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProductivityLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// Filtered returns the logs matching f, newest first.
func (s *Service) Filtered(f domain.Filter) []domain.ProductivityLog {
	return f.Apply(s.Logs())
}

// Dashboard computes the KPI bundle for f.
func (s *Service) Dashboard(f domain.Filter) *Dashboard {
	all := s.Logs()
	filtered := f.Apply(all)
	return &Dashboard{
		Filter:      f,
		Logs:        filtered,
		KPI:         domain.ComputeKPIs(filtered, all, s.Today()),
		Unique:      domain.ExtractUniqueValues(all),
		TotalLogs:   len(all),
		GeneratedAt: s.now().UTC(),
	}
}

// PublishKPIs exports the unfiltered KPI snapshot.
func (s *Service) PublishKPIs(ctx context.Context) error {
	if s.metrics == nil {
		return nil
	}
	d := s.Dashboard(domain.Filter{})
	if err := s.metrics.ExportKPIs(ctx, &d.KPI); err != nil {
		return fmt.Errorf("failed to export KPIs: %w", err)
	}
	return nil
}

// RunPublisher exports KPIs every interval until ctx is done. A non-positive
// interval publishes once and then waits for ctx.
func (s *Service) RunPublisher(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		if err := s.PublishKPIs(ctx); err != nil {
			s.log.Warn("KPI publish failed", logger.Error(err))
		}
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.PublishKPIs(ctx); err != nil {
			s.log.Warn("KPI publish failed", logger.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
