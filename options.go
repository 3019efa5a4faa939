package provkit

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Assembler.
type Option func(*assemblerConfig)

// assemblerConfig holds configuration for one Assembler instance.
type assemblerConfig struct {
	logger             *slog.Logger
	tracer             trace.Tracer
	meter              metric.Meter
	withAttributes     bool
	denylist           []string
	runAssociations    bool
	projectAttribution bool
}

func defaultConfig() assemblerConfig {
	return assemblerConfig{
		logger:         slog.New(slog.DiscardHandler),
		withAttributes: true,
	}
}

// WithLogger sets a structured logger for the assembler.
// If not provided, logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *assemblerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets an OpenTelemetry tracer. When configured, each assembly
// produces a span carrying the project tag and output cardinalities.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *assemblerConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter. When configured, the assembler
// records node, relation, and bundle counters plus an assembly duration
// histogram.
func WithMeter(meter metric.Meter) Option {
	return func(c *assemblerConfig) {
		c.meter = meter
	}
}

// WithoutAttributes builds a structure-only document: nodes are created
// without attribute bags. Namespaces, identifiers, and relations are
// unaffected.
func WithoutAttributes() Option {
	return func(c *assemblerConfig) {
		c.withAttributes = false
	}
}

// WithAttributeDenylist excludes additional project metadata keys from the
// project entity's attribute bag. The sample, file, and environment
// backing collections are always excluded.
func WithAttributeDenylist(keys ...string) Option {
	return func(c *assemblerConfig) {
		c.denylist = append(c.denylist, keys...)
	}
}

// WithRunAssociations wires an association edge from each program activity
// to the agent of the user its last run executed as. The user must be
// registered on the project's environment map; a missing user fails the
// assembly with prov.ErrDanglingReference instead of being skipped.
func WithRunAssociations() Option {
	return func(c *assemblerConfig) {
		c.runAssociations = true
	}
}

// WithProjectAttribution wires an attribution edge from the project entity
// to every registered user agent.
func WithProjectAttribution() Option {
	return func(c *assemblerConfig) {
		c.projectAttribution = true
	}
}
