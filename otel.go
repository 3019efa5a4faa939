package provkit

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// assemblyMetrics holds the OpenTelemetry metric instruments for the
// assembler. They are created once per Assembler when WithMeter is set.
type assemblyMetrics struct {
	// nodes counts graph nodes created per assembly.
	nodes metric.Int64Counter

	// relations counts relations wired per assembly.
	relations metric.Int64Counter

	// bundles counts sample bundles created per assembly.
	bundles metric.Int64Counter

	// duration records assembly duration in milliseconds.
	duration metric.Float64Histogram
}

// newAssemblyMetrics creates the metric instruments on the given meter.
func newAssemblyMetrics(meter metric.Meter) (*assemblyMetrics, error) {
	m := &assemblyMetrics{}
	var err error

	m.nodes, err = meter.Int64Counter(
		"prov.assembly.nodes",
		metric.WithDescription("Number of provenance graph nodes created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create nodes counter: %w", err)
	}

	m.relations, err = meter.Int64Counter(
		"prov.assembly.relations",
		metric.WithDescription("Number of provenance relations wired"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create relations counter: %w", err)
	}

	m.bundles, err = meter.Int64Counter(
		"prov.assembly.bundles",
		metric.WithDescription("Number of sample bundles created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create bundles counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram(
		"prov.assembly.duration",
		metric.WithDescription("Assembly duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return m, nil
}

// recordAssembly captures span attributes and metrics for one assembly.
// It is a no-op for whichever of tracer/meter is not configured, and never
// fails the assembly itself.
func (a *Assembler) recordAssembly(ctx context.Context, span trace.Span, tag string, counts documentCounts, duration time.Duration, err error) {
	if span != nil {
		span.SetAttributes(
			attribute.String("prov.project", tag),
			attribute.Int("prov.nodes", counts.nodes),
			attribute.Int("prov.relations", counts.relations),
			attribute.Int("prov.bundles", counts.bundles),
			attribute.Float64("prov.duration_ms", float64(duration.Milliseconds())),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if a.metrics == nil || err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("prov.project", tag))
	a.metrics.nodes.Add(ctx, int64(counts.nodes), attrs)
	a.metrics.relations.Add(ctx, int64(counts.relations), attrs)
	a.metrics.bundles.Add(ctx, int64(counts.bundles), attrs)
	a.metrics.duration.Record(ctx, float64(duration.Milliseconds()), attrs)
}
