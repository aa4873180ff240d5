package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/authfront/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The provider should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricFlowSubmissions = "authfront.flow.submissions"
	MetricFlowDuration    = "authfront.flow.duration"
	MetricFlowActive      = "authfront.flow.active"
)

// FlowMetrics holds the instruments recorded by the flow controller.
type FlowMetrics struct {
	submissions metric.Int64Counter
	duration    metric.Float64Histogram
	active      metric.Int64UpDownCounter
}

// NewFlowMetrics creates flow instruments on the given meter.
func NewFlowMetrics(meter metric.Meter) (*FlowMetrics, error) {
	submissions, err := meter.Int64Counter(MetricFlowSubmissions,
		metric.WithDescription("Authentication flow attempts by flow and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFlowSubmissions, err)
	}

	duration, err := meter.Float64Histogram(MetricFlowDuration,
		metric.WithDescription("Duration of authentication flow attempts in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFlowDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricFlowActive,
		metric.WithDescription("Number of authentication flows waiting on the identity service"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricFlowActive, err)
	}

	return &FlowMetrics{
		submissions: submissions,
		duration:    duration,
		active:      active,
	}, nil
}

// RecordStart increments the in-flight count.
func (m *FlowMetrics) RecordStart(ctx context.Context, flow string) {
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrFlow, flow)))
}

// RecordEnd decrements the in-flight count and records the finished attempt.
func (m *FlowMetrics) RecordEnd(ctx context.Context, flow, status string, duration time.Duration) {
	m.active.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrFlow, flow)))
	m.RecordOutcome(ctx, flow, status, duration)
}

// RecordOutcome records an attempt that never reached the identity service
// (e.g. rejected by validation).
func (m *FlowMetrics) RecordOutcome(ctx context.Context, flow, status string, duration time.Duration) {
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrFlow, flow),
		attribute.String(AttrStatus, status),
	))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrFlow, flow),
		attribute.String(AttrStatus, status),
	))
}
