// Package gemini implements ports.InsightProvider on the Gemini
// generateContent REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/emiliopalmerini/worklog/internal/ports"
)

const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned by Complete when no key was configured.
var ErrMissingAPIKey = errors.New("gemini API key not provided (set GEMINI_API_KEY or API_KEY)")

type Provider struct {
	Model      string
	APIKey     string
	baseURL    string       // overrides the Gemini endpoint when set
	httpClient *http.Client // defaults to http.DefaultClient
}

func NewProvider(model, apiKey string) *Provider {
	return NewProviderWithClient(model, apiKey, "", nil)
}

// NewProviderWithClient creates a provider with a custom HTTP client and
// base URL.
func NewProviderWithClient(model, apiKey, baseURL string, client *http.Client) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{
		Model:      model,
		APIKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (p *Provider) ID() string {
	return "gemini:" + p.Model
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (p *Provider) endpoint() string {
	if p.baseURL != "" {
		return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", p.baseURL, p.Model, p.APIKey)
	}
	return fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", p.Model, p.APIKey)
}

func (p *Provider) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	if p.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	gReq := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: req.Prompt}}},
		},
	}
	if req.MaxTokens > 0 {
		gReq.GenerationConfig = &generationConfig{MaxOutputTokens: req.MaxTokens}
	}

	body, err := json.Marshal(gReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := p.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var gResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini API returned no candidates")
	}

	var text bytes.Buffer
	for _, pt := range gResp.Candidates[0].Content.Parts {
		text.WriteString(pt.Text)
	}

	model := p.Model
	if gResp.ModelVersion != "" {
		model = gResp.ModelVersion
	}

	return &ports.CompletionResponse{
		Text:         text.String(),
		Model:        model,
		InputTokens:  gResp.UsageMetadata.PromptTokenCount,
		OutputTokens: gResp.UsageMetadata.CandidatesTokenCount,
	}, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil && e.Error.Message != "" {
		return fmt.Errorf("gemini API returned status %s: %s", resp.Status, e.Error.Message)
	}
	return fmt.Errorf("gemini API returned status: %s", resp.Status)
}
