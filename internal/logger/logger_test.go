package logger_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emiliopalmerini/worklog/internal/logger"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		l, err := logger.New(logger.Config{Level: level, OutputPaths: []string{"stderr"}})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", level, err)
		}
		l.Debug("debug message")
		_ = l.Sync()
	}
}

func TestWith_AttachesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewWithCore(core).With(logger.String("component", "test"))

	l.Info("hello", logger.Int("count", 2))
	l.Debug("filtered")
	l.Error("failed", logger.Error(errors.New("boom")))

	if logs.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", logs.Len())
	}
	first := logs.All()[0]
	fields := first.ContextMap()
	if fields["component"] != "test" {
		t.Errorf("expected component field, got %v", fields)
	}
	if fields["count"] != int64(2) {
		t.Errorf("expected count=2, got %v", fields["count"])
	}
}

func TestContext_RoundTrip(t *testing.T) {
	nop := logger.NewNop()
	ctx := logger.WithContext(context.Background(), nop)
	if got := logger.FromContext(ctx); got != nop {
		t.Errorf("FromContext returned %v, want %v", got, nop)
	}

	fallback := logger.FromContext(context.Background())
	if fallback == nil {
		t.Fatal("expected non-nil fallback")
	}
	fallback.Warn("must not panic")
}
