package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyCacheMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	keyCacheMetrics, err := NewKeyCacheMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, keyCacheMetrics)
}

func TestKeyCacheMetrics_RecordLookup(t *testing.T) {
	provider, err := NewProvider("keycache_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	km, err := NewKeyCacheMetrics(provider.MeterProvider(), "keycache_test")
	require.NoError(t, err)

	ctx := context.Background()
	km.RecordLookup(ctx, "hit")
	km.RecordLookup(ctx, "hit")
	km.RecordLookup(ctx, "miss")
	km.RecordLookup(ctx, "rejected")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)

	output := w.Body.String()

	assertMetricLine(t, output, `keycache_test_key_cache_lookups_total`, `result="hit"`, `2`)
	assertMetricLine(t, output, `keycache_test_key_cache_lookups_total`, `result="miss"`, `1`)
	assertMetricLine(t, output, `keycache_test_key_cache_lookups_total`, `result="rejected"`, `1`)
}

func TestNewNoOpKeyCacheMetrics(t *testing.T) {
	noOp := NewNoOpKeyCacheMetrics()

	assert.NotNil(t, noOp)

	// Should not panic
	noOp.RecordLookup(context.Background(), "hit")
}
