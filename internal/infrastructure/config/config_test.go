package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Insight.Provider != "gemini" {
		t.Errorf("expected gemini provider, got %q", cfg.Insight.Provider)
	}
	if !cfg.Seed.Enabled {
		t.Error("expected seed enabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("WORKLOG_ADDR", ":9090")
	t.Setenv("WORKLOG_INSIGHT_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("WORKLOG_SEED_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.Server.Addr)
	}
	if cfg.Insight.Key() != "sk-test" {
		t.Errorf("expected anthropic key, got %q", cfg.Insight.Key())
	}
	if cfg.Seed.Enabled {
		t.Error("expected seed disabled")
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("WORKLOG_INSIGHT_PROVIDER", "openai")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "unknown insight provider") {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestInsight_KeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		cfg  Insight
		want string
	}{
		{"gemini specific wins", Insight{Provider: "gemini", GeminiAPIKey: "g", APIKey: "a"}, "g"},
		{"generic fallback", Insight{Provider: "gemini", APIKey: "a"}, "a"},
		{"none", Insight{Provider: "gemini"}, ""},
		{"anthropic ignores gemini keys", Insight{Provider: "anthropic", GeminiAPIKey: "g"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Key(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDatabase_ResolveURL(t *testing.T) {
	got, err := Database{URL: "libsql://db.example.com"}.ResolveURL()
	if err != nil || got != "libsql://db.example.com" {
		t.Errorf("expected explicit URL, got %q (%v)", got, err)
	}

	t.Setenv("XDG_DATA_HOME", t.TempDir())
	got, err = Database{}.ResolveURL()
	if err != nil {
		t.Fatalf("ResolveURL failed: %v", err)
	}
	if !strings.HasPrefix(got, "file:") || !strings.HasSuffix(got, "worklog.db") {
		t.Errorf("expected local file URL, got %q", got)
	}
}
