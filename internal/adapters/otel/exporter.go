// Package otel exports submission counters and KPI gauges to an OTLP
// collector.
package otel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/config"
	"github.com/emiliopalmerini/worklog/internal/ports"
)

const (
	serviceName    = "worklog"
	serviceVersion = "1.0.0"
)

var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter records submissions as counters and serves the latest KPI
// snapshot through observable gauges.
type Exporter struct {
	provider *sdkmetric.MeterProvider

	submissionsTotal metric.Int64Counter
	tasksTotal       metric.Int64Counter
	hoursHist        metric.Float64Histogram

	mu       sync.RWMutex
	snapshot *domain.KPIData
}

// NewExporter creates an exporter pushing to the configured OTLP endpoint.
func NewExporter(ctx context.Context, cfg config.OTel) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	e, err := NewExporterWithReader(sdkmetric.NewPeriodicReader(exp), sdkmetric.WithResource(res))
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(e.provider)
	return e, nil
}

// NewExporterWithReader builds the instruments on a provider backed by
// reader. Tests pass a manual reader.
func NewExporterWithReader(reader sdkmetric.Reader, opts ...sdkmetric.Option) (*Exporter, error) {
	opts = append(opts, sdkmetric.WithReader(reader))
	provider := sdkmetric.NewMeterProvider(opts...)
	meter := provider.Meter(serviceName)

	e := &Exporter{provider: provider}

	var err error
	e.submissionsTotal, err = meter.Int64Counter(
		"worklog_submissions_total",
		metric.WithDescription("Total number of accepted daily submissions"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submissions counter: %w", err)
	}

	e.tasksTotal, err = meter.Int64Counter(
		"worklog_tasks_logged_total",
		metric.WithDescription("Total number of task logs created by submissions"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tasks counter: %w", err)
	}

	e.hoursHist, err = meter.Float64Histogram(
		"worklog_submission_hours",
		metric.WithDescription("Hours reported per daily submission"),
		metric.WithUnit("h"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hours histogram: %w", err)
	}

	if err := e.registerGauges(meter); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Exporter) registerGauges(meter metric.Meter) error {
	summary := func(pick func(domain.ExecutiveStats) float64) metric.Float64Callback {
		return func(ctx context.Context, o metric.Float64Observer) error {
			if k := e.latest(); k != nil {
				o.Observe(pick(k.ExecutiveSummary))
			}
			return nil
		}
	}

	gauges := []struct {
		name, desc, unit string
		cb               metric.Float64Callback
	}{
		{"worklog_completion_rate", "Share of tasks marked complete", "%",
			summary(func(s domain.ExecutiveStats) float64 { return s.CompletionRate })},
		{"worklog_utilization_rate", "Logged hours over available hours", "%",
			summary(func(s domain.ExecutiveStats) float64 { return s.OverallUtilizationRate })},
		{"worklog_avg_task_duration", "Average hours per task", "h",
			summary(func(s domain.ExecutiveStats) float64 { return s.AvgTaskDuration })},
		{"worklog_tasks", "Number of logged tasks", "{task}",
			summary(func(s domain.ExecutiveStats) float64 { return float64(s.TotalTasks) })},
		{"worklog_form_completeness", "Share of logs with every required field", "%",
			func(ctx context.Context, o metric.Float64Observer) error {
				if k := e.latest(); k != nil {
					o.Observe(k.DataQuality.FormCompletenessScore)
				}
				return nil
			}},
		{"worklog_department_completion_rate", "Completion rate per department with tasks", "%",
			func(ctx context.Context, o metric.Float64Observer) error {
				k := e.latest()
				if k == nil {
					return nil
				}
				for _, d := range k.DepartmentalPerformance {
					if d.TotalTasks == 0 {
						continue
					}
					o.Observe(d.CompletionRate, metric.WithAttributes(attribute.String("department", string(d.Department))))
				}
				return nil
			}},
	}

	for _, g := range gauges {
		if _, err := meter.Float64ObservableGauge(g.name,
			metric.WithDescription(g.desc),
			metric.WithUnit(g.unit),
			metric.WithFloat64Callback(g.cb),
		); err != nil {
			return fmt.Errorf("creating %s gauge: %w", g.name, err)
		}
	}
	return nil
}

func (e *Exporter) latest() *domain.KPIData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// RecordSubmission counts one accepted daily submission.
func (e *Exporter) RecordSubmission(ctx context.Context, m *ports.SubmissionMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("department", string(m.Department)),
		attribute.Bool("persisted", m.Persisted),
	)
	e.submissionsTotal.Add(ctx, 1, opt)
	e.tasksTotal.Add(ctx, int64(m.TaskCount), opt)
	e.hoursHist.Record(ctx, m.Hours, opt)
	return nil
}

// ExportKPIs replaces the snapshot the gauges report.
func (e *Exporter) ExportKPIs(ctx context.Context, k *domain.KPIData) error {
	snap := *k
	e.mu.Lock()
	e.snapshot = &snap
	e.mu.Unlock()
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
