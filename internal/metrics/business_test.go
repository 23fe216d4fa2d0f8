package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	t.Run("Success_CreateBusinessMetrics", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

		require.NoError(t, err)
		assert.NotNil(t, businessMetrics)
	})
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "cipher", "cipher_key_create", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		// Should not panic
		bm.RecordOperation(context.Background(), "cipher", "cipher_key_create", "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "cipher", "cipher_key_create", "success")
		bm.RecordOperation(context.Background(), "cipher", "cipher_encrypt", "success")
		bm.RecordOperation(context.Background(), "cipher", "cipher_key_rotate", "error")
	})
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulDuration", func(t *testing.T) {
		// Should not panic
		bm.RecordDuration(context.Background(), "cipher", "cipher_key_create", 123*time.Millisecond, "success")
	})

	t.Run("Success_RecordFailedDuration", func(t *testing.T) {
		// Should not panic
		bm.RecordDuration(context.Background(), "cipher", "cipher_key_create", 456*time.Millisecond, "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "cipher", "cipher_key_create", 100*time.Millisecond, "success")
		bm.RecordDuration(context.Background(), "cipher", "cipher_encrypt", 200*time.Millisecond, "success")
		bm.RecordDuration(context.Background(), "cipher", "cipher_key_rotate", 300*time.Millisecond, "error")
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_RecordOperationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordOperation(context.Background(), "cipher", "cipher_key_create", "success")
		noOpMetrics.RecordOperation(context.Background(), "cipher", "cipher_encrypt", "error")
	})

	t.Run("NoOp_RecordDurationDoesNotPanic", func(t *testing.T) {
		// Should not panic or do anything
		noOpMetrics.RecordDuration(context.Background(), "cipher", "prime_generate", 100*time.Millisecond, "success")
		noOpMetrics.RecordDuration(context.Background(), "cipher", "cipher_encrypt", 200*time.Millisecond, "error")
	})

	t.Run("NoOp_RecordBytesDoesNotPanic", func(t *testing.T) {
		noOpMetrics.RecordBytes(context.Background(), "cipher", "cipher_encrypt", 1024)
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	// Record various operations
	ctx := context.Background()

	// Record operation counts
	bm.RecordOperation(ctx, "cipher", "cipher_key_create", "success")
	bm.RecordOperation(ctx, "cipher", "cipher_key_create", "success")
	bm.RecordOperation(ctx, "cipher", "cipher_key_create", "error")
	bm.RecordOperation(ctx, "cipher", "cipher_encrypt", "success")
	bm.RecordOperation(ctx, "cipher", "cipher_decrypt", "success")
	bm.RecordOperation(ctx, "cipher", "cipher_key_rotate", "success")

	// Record operation durations
	bm.RecordDuration(ctx, "cipher", "cipher_key_create", 50*time.Millisecond, "success")
	bm.RecordDuration(ctx, "cipher", "cipher_key_create", 60*time.Millisecond, "success")
	bm.RecordDuration(ctx, "cipher", "cipher_key_create", 100*time.Millisecond, "error")
	bm.RecordDuration(ctx, "cipher", "cipher_encrypt", 10*time.Millisecond, "success")
	bm.RecordDuration(ctx, "cipher", "cipher_decrypt", 20*time.Millisecond, "success")
	bm.RecordDuration(ctx, "cipher", "cipher_key_rotate", 150*time.Millisecond, "success")

	bm.RecordBytes(ctx, "cipher", "cipher_encrypt", 4)
	bm.RecordBytes(ctx, "cipher", "cipher_encrypt", 6)
	bm.RecordBytes(ctx, "cipher", "cipher_decrypt", 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	// Check operation counts
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="cipher".*operation="cipher_key_create".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="cipher".*operation="cipher_key_create".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operations_total`,
		`domain="cipher".*operation="cipher_encrypt".*status="success"`,
		`1`,
	)

	// Check durations (existence)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_count`,
		`domain="cipher".*operation="cipher_key_create".*status="success"`,
		`2`,
	)
	assert.Regexp(t, `integration_test_processed_bytes[a-z_]*\{[^}]*operation="cipher_encrypt"[^}]*\} 10`, output)
	assert.NotRegexp(t, `processed_bytes[a-z_]*\{[^}]*operation="cipher_decrypt"`, output)
	assertBizMetricLine(
		t,
		output,
		`integration_test_operation_duration_seconds_sum`,
		`domain="cipher".*operation="cipher_key_create".*status="success"`,
		``,
	)
}
