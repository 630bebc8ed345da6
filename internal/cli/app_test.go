package cli

import (
	"testing"

	"github.com/emiliopalmerini/worklog/internal/adapters/anthropic"
	"github.com/emiliopalmerini/worklog/internal/adapters/gemini"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/config"
	"github.com/emiliopalmerini/worklog/internal/insight"
	"github.com/emiliopalmerini/worklog/internal/logger"
)

func TestNewInsightProvider(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.Insight
		wantID string
	}{
		{
			name:   "no key",
			cfg:    config.Insight{Provider: "gemini"},
			wantID: "",
		},
		{
			name:   "gemini default model",
			cfg:    config.Insight{Provider: "gemini", APIKey: "k"},
			wantID: "gemini:" + gemini.DefaultModel,
		},
		{
			name:   "gemini behind a base URL",
			cfg:    config.Insight{Provider: "gemini", GeminiAPIKey: "k", Model: "gemini-2.0", BaseURL: "http://localhost:9999"},
			wantID: "gemini:gemini-2.0",
		},
		{
			name:   "anthropic default model",
			cfg:    config.Insight{Provider: "anthropic", AnthropicAPIKey: "k"},
			wantID: "anthropic:" + anthropic.DefaultModel,
		},
		{
			name:   "anthropic ignores gemini key",
			cfg:    config.Insight{Provider: "anthropic", GeminiAPIKey: "k"},
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newInsightProvider(tt.cfg, logger.NewNop())
			if tt.wantID == "" {
				if p != nil {
					t.Fatalf("expected no provider, got %s", p.ID())
				}
				return
			}
			if p == nil {
				t.Fatal("expected a provider")
			}
			if _, ok := p.(*insight.ResilientProvider); !ok {
				t.Errorf("expected provider wrapped in ResilientProvider, got %T", p)
			}
			if got := p.ID(); got != tt.wantID {
				t.Errorf("ID() = %q, want %q", got, tt.wantID)
			}
		})
	}
}
