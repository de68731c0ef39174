package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestTracing(t *testing.T) {
	recorder := recordSpans(t)
	session := identity.Session{TenantID: uuid.New(), UserID: uuid.New(), Role: identity.RoleBuyer}

	r := gin.New()
	r.Use(RequestID(), Tracing(TracingConfig{ServiceName: "test", Enabled: true}), SpanErrorMarker(),
		Authenticate(AuthConfig{Parser: stubParser{session: session}}), TraceSession())
	r.GET("/api/orders/:orderId", okHandler)
	r.GET("/api/missing/:orderId", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
	req.Header.Set("Authorization", "Bearer t")
	serve(r, req)

	req = httptest.NewRequest(http.MethodGet, "/api/missing/42", nil)
	req.Header.Set("Authorization", "Bearer t")
	serve(r, req)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Contains(t, spans[0].Name(), "/api/orders/:orderId")
	assert.Equal(t, session.TenantID.String(), attrs["tenant_id"])
	assert.Equal(t, "buyer", attrs["session.role"])
	assert.NotEmpty(t, attrs["request_id"])
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "Not Found", spans[1].Status().Description)
}

func TestTracing_Disabled(t *testing.T) {
	recorder := recordSpans(t)

	r := gin.New()
	r.Use(Tracing(TracingConfig{Enabled: false}))
	r.GET("/x", okHandler)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}
