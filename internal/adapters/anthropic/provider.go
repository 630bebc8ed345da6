// Package anthropic implements ports.InsightProvider on the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/emiliopalmerini/worklog/internal/ports"
)

const (
	DefaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 1024
)

var ErrMissingAPIKey = errors.New("anthropic API key not provided (set ANTHROPIC_API_KEY)")

type Provider struct {
	Model  string
	apiKey string
	client anthropic.Client
}

func NewProvider(model, apiKey string) *Provider {
	return NewProviderWithClient(model, apiKey, "", nil)
}

// NewProviderWithClient creates a provider with a custom HTTP client and
// base URL. The SDK's own retries are disabled; callers wrap the provider
// in their own retry policy.
func NewProviderWithClient(model, apiKey, baseURL string, httpClient *http.Client) *Provider {
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &Provider{
		Model:  model,
		apiKey: apiKey,
		client: anthropic.NewClient(opts...),
	}
}

func (p *Provider) ID() string {
	return "anthropic:" + p.Model
}

func (p *Provider) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.Model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, errors.New("anthropic API returned no text content")
	}

	return &ports.CompletionResponse{
		Text:         text.String(),
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}, nil
}
