package provkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/provkit/provkit/model"
)

func TestAssembleTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, err := Assemble(context.Background(), demoProject(), WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]

	assert.Equal(t, "provkit.assemble", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "demo", attrs["prov.project"].AsString())
	// Sample entity, file entity, activity, project entity.
	assert.Equal(t, int64(4), attrs["prov.nodes"].AsInt64())
	assert.Equal(t, int64(1), attrs["prov.relations"].AsInt64())
	assert.Equal(t, int64(1), attrs["prov.bundles"].AsInt64())
}

func TestAssembleTracingRecordsFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	project := demoProject()
	project.Samples["S1"].AddProgram(model.NewProgram("idle"))

	_, err := Assemble(context.Background(), project, WithTracer(tp.Tracer("test")))
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestAssembleWithMeter(t *testing.T) {
	// The noop meter satisfies instrument creation; this exercises the
	// metrics path end to end without an SDK pipeline.
	_, err := Assemble(context.Background(), demoProject(), WithMeter(noop.NewMeterProvider().Meter("test")))
	assert.NoError(t, err)
}

func TestNewAssemblyMetrics(t *testing.T) {
	m, err := newAssemblyMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, m.nodes)
	assert.NotNil(t, m.relations)
	assert.NotNil(t, m.bundles)
	assert.NotNil(t, m.duration)
}
