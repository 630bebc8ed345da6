package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/worklog/internal/util"
)

// Database holds libsql connection settings. An empty URL selects a local
// file under the XDG data directory.
type Database struct {
	URL       string `envconfig:"WORKLOG_DATABASE_URL"`
	AuthToken string `envconfig:"WORKLOG_AUTH_TOKEN"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr            string        `envconfig:"WORKLOG_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"WORKLOG_SHUTDOWN_TIMEOUT" default:"10s"`
	MetricsInterval time.Duration `envconfig:"WORKLOG_METRICS_INTERVAL" default:"30s"`
}

type Log struct {
	Level       string `envconfig:"WORKLOG_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"WORKLOG_LOG_DEVELOPMENT"`
}

type OTel struct {
	Enabled  bool   `envconfig:"WORKLOG_OTEL_ENABLED"`
	Endpoint string `envconfig:"WORKLOG_OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"WORKLOG_OTEL_INSECURE"`
}

// Insight selects and tunes the text-generation provider.
type Insight struct {
	Provider        string        `envconfig:"WORKLOG_INSIGHT_PROVIDER" default:"gemini"`
	Model           string        `envconfig:"WORKLOG_INSIGHT_MODEL"`
	GeminiAPIKey    string        `envconfig:"GEMINI_API_KEY"`
	APIKey          string        `envconfig:"API_KEY"`
	AnthropicAPIKey string        `envconfig:"ANTHROPIC_API_KEY"`
	BaseURL         string        `envconfig:"WORKLOG_INSIGHT_BASE_URL"`
	MaxTokens       int           `envconfig:"WORKLOG_INSIGHT_MAX_TOKENS" default:"1024"`
	Timeout         time.Duration `envconfig:"WORKLOG_INSIGHT_TIMEOUT" default:"60s"`
	MaxAttempts     int           `envconfig:"WORKLOG_INSIGHT_MAX_ATTEMPTS" default:"2"`
}

// Key returns the API key for the configured provider. For gemini,
// GEMINI_API_KEY wins over the generic API_KEY.
func (i Insight) Key() string {
	switch i.Provider {
	case "anthropic":
		return i.AnthropicAPIKey
	default:
		if i.GeminiAPIKey != "" {
			return i.GeminiAPIKey
		}
		return i.APIKey
	}
}

type Seed struct {
	Enabled bool `envconfig:"WORKLOG_SEED_ENABLED" default:"true"`
}

// App is the full worklog configuration.
type App struct {
	Database Database
	Server   Server
	Log      Log
	OTel     OTel
	Insight  Insight
	Seed     Seed
}

// Load reads the configuration from environment variables.
func Load() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Insight.Provider != "gemini" && cfg.Insight.Provider != "anthropic" {
		return nil, fmt.Errorf("unknown insight provider %q: expected gemini or anthropic", cfg.Insight.Provider)
	}
	return &cfg, nil
}

// ResolveURL returns the configured database URL, falling back to the
// local default file.
func (d Database) ResolveURL() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	return util.DefaultDatabaseURL()
}
