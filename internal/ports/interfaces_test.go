package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/worklog/internal/adapters/anthropic"
	"github.com/emiliopalmerini/worklog/internal/adapters/gemini"
	"github.com/emiliopalmerini/worklog/internal/adapters/otel"
	"github.com/emiliopalmerini/worklog/internal/adapters/turso"
	"github.com/emiliopalmerini/worklog/internal/insight"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestLogRepositoryConformance(t *testing.T) {
	var _ ports.LogRepository = (*turso.LogRepository)(nil)
}

func TestGeminiProviderConformance(t *testing.T) {
	var _ ports.InsightProvider = (*gemini.Provider)(nil)
}

func TestAnthropicProviderConformance(t *testing.T) {
	var _ ports.InsightProvider = (*anthropic.Provider)(nil)
}

func TestResilientProviderConformance(t *testing.T) {
	var _ ports.InsightProvider = (*insight.ResilientProvider)(nil)
}

func TestMetricsExporterConformance(t *testing.T) {
	var _ ports.MetricsExporter = (*otel.Exporter)(nil)
	var _ ports.MetricsExporter = (*otel.NoOpExporter)(nil)
}
