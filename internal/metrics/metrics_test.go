package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric with
// the given name, partial label pattern, and value. Regex absorbs the extra
// otel scope labels the exporter injects.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	return w.Body.String()
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("onetime")
	require.NoError(t, err)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_ShutdownWithoutMeterProvider(t *testing.T) {
	provider := &Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("onetime")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "onetime")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "secrets", "secret_create", "success")
	bm.RecordOperation(ctx, "secrets", "secret_create", "success")
	bm.RecordOperation(ctx, "secrets", "secret_read", "error")
	bm.RecordDuration(ctx, "secrets", "secret_create", 50*time.Millisecond, "success")

	output := scrape(t, provider)

	assertMetricLine(
		t,
		output,
		`onetime_operations_total`,
		`domain="secrets".*operation="secret_create".*status="success"`,
		`2`,
	)
	assertMetricLine(
		t,
		output,
		`onetime_operations_total`,
		`domain="secrets".*operation="secret_read".*status="error"`,
		`1`,
	)
	assertMetricLine(
		t,
		output,
		`onetime_operation_duration_seconds_count`,
		`domain="secrets".*operation="secret_create".*status="success"`,
		`1`,
	)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	bm.RecordOperation(context.Background(), "secrets", "secret_create", "success")
	bm.RecordDuration(context.Background(), "secrets", "secret_create", time.Millisecond, "success")
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("onetime")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "onetime"))
	router.GET("/api/secrets/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/secrets/abc", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	output := scrape(t, provider)

	assertMetricLine(
		t,
		output,
		`onetime_http_requests_total`,
		`method="GET".*path="/api/secrets/:id".*status_code="200"`,
		`1`,
	)
	assertMetricLine(
		t,
		output,
		`onetime_http_request_duration_seconds_count`,
		`method="GET".*path="/api/secrets/:id"`,
		`1`,
	)
}
