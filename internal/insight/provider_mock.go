package insight

import (
	"context"

	"github.com/emiliopalmerini/worklog/internal/ports"
)

// MockProvider is a mock implementation of ports.InsightProvider for testing.
type MockProvider struct {
	Model        string
	CompleteFunc func(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error)
}

func (m *MockProvider) ID() string {
	return "mock:" + m.Model
}

func (m *MockProvider) Complete(ctx context.Context, req ports.CompletionRequest) (*ports.CompletionResponse, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &ports.CompletionResponse{Text: "mock insight", Model: m.Model}, nil
}
