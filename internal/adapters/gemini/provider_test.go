package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emiliopalmerini/worklog/internal/adapters/gemini"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

func TestProvider_ID(t *testing.T) {
	p := gemini.NewProvider("", "key")
	if p.ID() != "gemini:gemini-2.5-flash" {
		t.Errorf("expected default model in ID, got %q", p.ID())
	}
}

func TestProvider_Complete_Success(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key query parameter, got %q", r.URL.Query().Get("key"))
		}
		_ = json.NewDecoder(r.Body).Decode(&received)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]string{
							{"text": "## Executive Summary\n"},
							{"text": "All good."},
						},
					},
				},
			},
			"usageMetadata": map[string]int{
				"promptTokenCount":     120,
				"candidatesTokenCount": 30,
			},
		})
	}))
	defer server.Close()

	p := gemini.NewProviderWithClient("", "test-key", server.URL, server.Client())
	resp, err := p.Complete(context.Background(), ports.CompletionRequest{Prompt: "Analyze", MaxTokens: 256})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text != "## Executive Summary\nAll good." {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Errorf("expected model gemini-2.5-flash, got %s", resp.Model)
	}
	if resp.InputTokens != 120 || resp.OutputTokens != 30 {
		t.Errorf("unexpected usage %d/%d", resp.InputTokens, resp.OutputTokens)
	}

	cfg, ok := received["generationConfig"].(map[string]any)
	if !ok || cfg["maxOutputTokens"] != float64(256) {
		t.Errorf("expected maxOutputTokens 256, got %v", received["generationConfig"])
	}
}

func TestProvider_Complete_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		p := gemini.NewProvider("", "")
		_, err := p.Complete(context.Background(), ports.CompletionRequest{Prompt: "x"})
		if !errors.Is(err, gemini.ErrMissingAPIKey) {
			t.Errorf("expected ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
		}))
		defer server.Close()

		p := gemini.NewProviderWithClient("", "k", server.URL, server.Client())
		_, err := p.Complete(context.Background(), ports.CompletionRequest{Prompt: "x"})
		if err == nil || !strings.Contains(err.Error(), "Quota exceeded") {
			t.Errorf("expected quota error, got %v", err)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		p := gemini.NewProviderWithClient("", "k", server.URL, server.Client())
		if _, err := p.Complete(context.Background(), ports.CompletionRequest{Prompt: "x"}); err == nil {
			t.Error("expected error for empty candidates")
		}
	})
}
