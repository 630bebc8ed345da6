package ports

import "context"

// InsightProvider generates narrative text from a prompt.
type InsightProvider interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

type CompletionRequest struct {
	Prompt    string
	MaxTokens int
}

type CompletionResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}
