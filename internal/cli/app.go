package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emiliopalmerini/worklog/internal/adapters/anthropic"
	"github.com/emiliopalmerini/worklog/internal/adapters/gemini"
	"github.com/emiliopalmerini/worklog/internal/adapters/otel"
	"github.com/emiliopalmerini/worklog/internal/adapters/turso"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/config"
	"github.com/emiliopalmerini/worklog/internal/insight"
	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/migrate"
	"github.com/emiliopalmerini/worklog/internal/ports"
	"github.com/emiliopalmerini/worklog/internal/productivity"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.App
	Log      logger.Logger
	DB       *sql.DB
	Repos    *turso.Repositories
	Metrics  ports.MetricsExporter
	Logs     *productivity.Service
	Insights *insight.Service
}

// NewAppContext connects to the database, applies pending migrations and
// loads the log collection.
func NewAppContext(ctx context.Context, cfg *config.App, log logger.Logger) (*AppContext, error) {
	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app := newAppContext(cfg, log, db, newMetricsExporter(ctx, cfg.OTel, log))
	app.Logs.Load(ctx)
	return app, nil
}

func newAppContext(cfg *config.App, log logger.Logger, db *sql.DB, exporter ports.MetricsExporter) *AppContext {
	repos := turso.NewRepositories(db)

	logs := productivity.NewService(repos.Logs,
		productivity.WithLogger(log.With(logger.String("component", "productivity"))),
		productivity.WithMetrics(exporter),
		productivity.WithSeed(cfg.Seed.Enabled),
	)

	insights := insight.NewService(newInsightProvider(cfg.Insight, log),
		insight.WithRunRepository(repos.Insights),
		insight.WithLogger(log.With(logger.String("component", "insight"))),
		insight.WithMaxTokens(cfg.Insight.MaxTokens),
	)

	return &AppContext{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Repos:    repos,
		Metrics:  exporter,
		Logs:     logs,
		Insights: insights,
	}
}

// newInsightProvider returns nil when no API key is configured, which
// leaves insights unavailable.
func newInsightProvider(cfg config.Insight, log logger.Logger) ports.InsightProvider {
	key := cfg.Key()
	if key == "" {
		return nil
	}

	return insight.NewResilientProvider(newBaseProvider(cfg, key), insight.ResilienceConfig{
		MaxAttempts: cfg.MaxAttempts,
		Timeout:     cfg.Timeout,
	}, log)
}

// newBaseProvider builds the configured adapter. WORKLOG_INSIGHT_BASE_URL
// points it at a proxy or a local stand-in.
func newBaseProvider(cfg config.Insight, key string) ports.InsightProvider {
	switch {
	case cfg.Provider == "anthropic" && cfg.BaseURL == "":
		return anthropic.NewProvider(cfg.Model, key)
	case cfg.Provider == "anthropic":
		return anthropic.NewProviderWithClient(cfg.Model, key, cfg.BaseURL, nil)
	case cfg.BaseURL == "":
		return gemini.NewProvider(cfg.Model, key)
	default:
		return gemini.NewProviderWithClient(cfg.Model, key, cfg.BaseURL, nil)
	}
}

func newMetricsExporter(ctx context.Context, cfg config.OTel, log logger.Logger) ports.MetricsExporter {
	if !cfg.Enabled {
		return otel.NewNoOpExporter()
	}
	exp, err := otel.NewExporter(ctx, cfg)
	if err != nil {
		log.Warn("OTEL exporter unavailable, metrics disabled", logger.Error(err))
		return otel.NewNoOpExporter()
	}
	return exp
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	var errs []error
	if a.Metrics != nil {
		errs = append(errs, a.Metrics.Close(ctx))
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return errors.Join(errs...)
}
