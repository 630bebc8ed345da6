package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/sony/gobreaker"

	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

// ErrCircuitOpen is returned while the provider is failing repeatedly.
var ErrCircuitOpen = errors.New("insight provider circuit breaker is open")

type ResilienceConfig struct {
	MaxAttempts     int
	RetryDelay      time.Duration
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxAttempts:     2,
		RetryDelay:      time.Second,
		Timeout:         60 * time.Second,
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

func (c ResilienceConfig) withDefaults() ResilienceConfig {
	d := DefaultResilienceConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = d.RetryDelay
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = d.BreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = d.BreakerCooldown
	}
	return c
}

// ResilientProvider wraps a provider with a timeout, retries and a circuit
// breaker. The breaker counts one failure per exhausted retry sequence.
type ResilientProvider struct {
	inner   ports.InsightProvider
	cfg     ResilienceConfig
	breaker *gobreaker.CircuitBreaker
}

func NewResilientProvider(inner ports.InsightProvider, cfg ResilienceConfig, log logger.Logger) *ResilientProvider {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        inner.ID(),
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("insight circuit breaker state changed",
				logger.String("provider", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})

	return &ResilientProvider{
		inner:   inner,
		cfg:     cfg,
		breaker: breaker,
	}
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	r := retry.New[*ports.CompletionResponse](retry.Config{
		MaxAttempts:   p.cfg.MaxAttempts,
		InitialDelay:  p.cfg.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[*ports.CompletionResponse](timeout.Config{
		DefaultTimeout: p.cfg.Timeout,
	})

	res, err := p.breaker.Execute(func() (interface{}, error) {
		return t.Execute(ctx, p.cfg.Timeout, func(ctx context.Context) (*ports.CompletionResponse, error) {
			return r.Do(ctx, func(ctx context.Context) (*ports.CompletionResponse, error) {
				return p.inner.Complete(ctx, req)
			})
		})
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, p.inner.ID())
	}
	if err != nil {
		return nil, err
	}
	return res.(*ports.CompletionResponse), nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (p *ResilientProvider) State() string {
	return p.breaker.State().String()
}
