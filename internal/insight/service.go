// Package insight relays filtered logs to a text-generation provider and
// returns its narrative summary.
package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

var (
	// ErrInsightUnavailable means no provider is configured, usually a
	// missing API key.
	ErrInsightUnavailable = errors.New("insight provider not configured")
	// ErrNoLogs means the filtered view is empty.
	ErrNoLogs = errors.New("no logs to analyze")
	// ErrGenerationFailed wraps provider failures.
	ErrGenerationFailed = errors.New("failed to generate insights")
)

const defaultMaxTokens = 1024

// Result is one generated summary.
type Result struct {
	Text     string
	Provider string
	Model    string
	LogCount int
}

type Service struct {
	provider  ports.InsightProvider
	runs      ports.InsightRunRepository
	log       logger.Logger
	maxTokens int
	now       func() time.Time
}

type Option func(*Service)

// WithRunRepository records every successful summary.
func WithRunRepository(r ports.InsightRunRepository) Option {
	return func(s *Service) { s.runs = r }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMaxTokens(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

// NewService builds the relay. A nil provider makes every call fail with
// ErrInsightUnavailable.
func NewService(provider ports.InsightProvider, opts ...Option) *Service {
	s := &Service{
		provider:  provider,
		log:       logger.NewNop(),
		maxTokens: defaultMaxTokens,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s.provider != nil
}

// ProviderID names the configured provider, or "none".
func (s *Service) ProviderID() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.ID()
}

// Generate summarizes logs, which should already be filtered.
func (s *Service) Generate(ctx context.Context, logs []domain.ProductivityLog) (*Result, error) {
	if s.provider == nil {
		return nil, ErrInsightUnavailable
	}
	if len(logs) == 0 {
		return nil, ErrNoLogs
	}

	prompt, err := BuildPrompt(logs)
	if err != nil {
		return nil, err
	}

	start := s.now()
	resp, err := s.provider.Complete(ctx, ports.CompletionRequest{Prompt: prompt, MaxTokens: s.maxTokens})
	if err != nil {
		s.log.Error("insight generation failed",
			logger.String("provider", s.provider.ID()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	count := min(len(logs), MaxPromptLogs)
	s.log.Info("generated insights",
		logger.String("provider", s.provider.ID()),
		logger.Int("logs", count),
		logger.Int("input_tokens", resp.InputTokens),
		logger.Int("output_tokens", resp.OutputTokens),
		logger.Duration("elapsed", s.now().Sub(start)),
	)

	if s.runs != nil {
		run := &domain.InsightRun{
			ID:           uuid.NewString(),
			Provider:     s.provider.ID(),
			Model:        resp.Model,
			LogCount:     count,
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			Summary:      resp.Text,
			CreatedAt:    s.now().UTC(),
		}
		if err := s.runs.Save(ctx, run); err != nil {
			s.log.Warn("failed to record insight run", logger.Error(err))
		}
	}

	return &Result{
		Text:     resp.Text,
		Provider: s.provider.ID(),
		Model:    resp.Model,
		LogCount: count,
	}, nil
}

// History returns the most recent recorded summaries.
func (s *Service) History(ctx context.Context, limit int) ([]domain.InsightRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRecent(ctx, limit)
}

// Details returns the provider's cause of a Generate error, without the
// sentinel prefix.
func Details(err error) string {
	if e, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := e.Unwrap(); len(errs) > 1 {
			return errs[len(errs)-1].Error()
		}
	}
	return err.Error()
}
