package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "otlp", cfg.Exporter)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "paramspec", cfg.ServiceName)
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	p, err := NewTracerProvider(context.Background(), TracingConfig{})
	require.NoError(t, err)
	require.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "test-span")
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewTracerProvider_Stdout(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewTracerProvider(context.Background(), TracingConfig{
		Enabled:  true,
		Exporter: "stdout",
		Writer:   &buf,
	})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "paramspec.validate")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
	require.Contains(t, buf.String(), "paramspec.validate")
}

func TestNewTracerProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewTracerProvider(context.Background(), TracingConfig{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter type")
}
