package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.New(core))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.Equal(t, 1, logs.FilterMessageSnippet("tracing disabled").Len())

	tp.EnableSpanProfiles()
	assert.False(t, tp.SpanProfilesEnabled())
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, samplerFor(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func withRecordingTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

type role string

func (r role) String() string { return string(r) }

func TestStartServiceSpan(t *testing.T) {
	recorder := withRecordingTracer(t)

	ctx, span := StartServiceSpan(context.Background(), "shipping_quote", "select",
		SpanAttrOrderID, "ord-1",
		"attempt", 2,
		SpanAttrSessionAs, role("buyer"),
		"dangling",
	)
	assert.NotEmpty(t, GetTraceID(ctx))
	RecordError(span, errors.New("conflict"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "shipping_quote.select", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "ord-1", attrs[SpanAttrOrderID])
	assert.Equal(t, "2", attrs["attempt"])
	assert.Equal(t, "buyer", attrs[SpanAttrSessionAs])
	assert.NotContains(t, attrs, "dangling")
}

func TestRecordError_NilIsIgnored(t *testing.T) {
	recorder := withRecordingTracer(t)

	_, span := StartServiceSpan(context.Background(), "seller_order", "update_status")
	RecordError(span, nil)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestLoggerProvider(t *testing.T) {
	t.Run("disabled provider yields no core", func(t *testing.T) {
		lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, nil)
		require.NoError(t, err)
		assert.False(t, lp.IsEnabled())
		assert.Nil(t, lp.ZapCore(zapcore.InfoLevel))
		assert.NoError(t, lp.Shutdown(context.Background()))
	})

	t.Run("core filters below the minimum level", func(t *testing.T) {
		lp := newLoggerProviderWith(sdklog.NewLoggerProvider(), "marketplace-test")
		defer lp.Shutdown(context.Background())

		core := lp.ZapCore(zapcore.WarnLevel)
		require.NotNil(t, core)
		assert.False(t, core.Enabled(zapcore.InfoLevel))
		assert.True(t, core.Enabled(zapcore.ErrorLevel))

		child := core.With([]zapcore.Field{zap.String("k", "v")})
		assert.False(t, child.Enabled(zapcore.DebugLevel))
	})
}

func TestNewProfiler(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		p, err := NewProfiler(ProfilerConfig{Enabled: false}, nil)
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled requires server and name", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "marketplace"}, nil)
		assert.ErrorContains(t, err, "server address")

		_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, nil)
		assert.ErrorContains(t, err, "application name")
	})

	t.Run("goroutine profile is opt-in", func(t *testing.T) {
		assert.Len(t, profileTypes(ProfilerConfig{}), 5)
		assert.Len(t, profileTypes(ProfilerConfig{Goroutines: true}), 6)
	})
}
