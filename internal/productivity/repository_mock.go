package productivity

import (
	"context"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

// MockLogRepository is a mock implementation of ports.LogRepository for testing.
type MockLogRepository struct {
	LoadAllFunc   func(ctx context.Context) ([]domain.ProductivityLog, error)
	AppendAllFunc func(ctx context.Context, logs []domain.ProductivityLog) error
}

func (m *MockLogRepository) LoadAll(ctx context.Context) ([]domain.ProductivityLog, error) {
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockLogRepository) AppendAll(ctx context.Context, logs []domain.ProductivityLog) error {
	if m.AppendAllFunc != nil {
		return m.AppendAllFunc(ctx, logs)
	}
	return nil
}
