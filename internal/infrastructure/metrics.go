package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const MeterName = "tradeconc"

// Figure outcome labels
const (
	FigureGenerated = "generated"
	FigureSkipped   = "skipped"
	FigureFailed    = "failed"
)

// Metrics records batch-run counters. Batch jobs have no scrape endpoint, so
// the registry is flushed to a node-exporter textfile at the end of a run.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	partnersClassified metric.Int64Counter
	figures            metric.Int64Counter
	stageDuration      metric.Float64Gauge
}

// NewMetrics creates the meter provider backed by a private Prometheus registry
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithoutTargetInfo(),
		otelprom.WithoutScopeInfo(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(MeterName)

	partners, err := meter.Int64Counter(
		"tradeconc_partners_classified",
		metric.WithDescription("Partners classified by the classifier stage, by regime"),
	)
	if err != nil {
		return nil, err
	}

	figures, err := meter.Int64Counter(
		"tradeconc_figures",
		metric.WithDescription("Figures handled by the exporter, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Gauge(
		"tradeconc_stage_duration_seconds",
		metric.WithDescription("Wall time of the last run of each stage"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		registry:           registry,
		provider:           provider,
		partnersClassified: partners,
		figures:            figures,
		stageDuration:      duration,
	}, nil
}

// RecordPartner counts one classified partner
func (m *Metrics) RecordPartner(ctx context.Context, regime string) {
	if m == nil {
		return
	}
	m.partnersClassified.Add(ctx, 1, metric.WithAttributes(attribute.String("regime", regime)))
}

// RecordFigure counts one figure outcome
func (m *Metrics) RecordFigure(ctx context.Context, name, status string) {
	if m == nil {
		return
	}
	m.figures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("figure", name),
		attribute.String("status", status),
	))
}

// RecordStageDuration stores the stage wall time in seconds
func (m *Metrics) RecordStageDuration(ctx context.Context, stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("stage", stage)))
}

// WriteTextfile writes all metrics to path in Prometheus text format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown releases the meter provider
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
