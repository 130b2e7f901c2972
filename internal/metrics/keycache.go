package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// KeyCacheMetrics records asset key cache lookup outcomes.
type KeyCacheMetrics interface {
	// RecordLookup records one cache lookup.
	// Result values: "hit" (entry served, possibly joining an in-flight
	// fetch), "miss" (a new fetch was started), "rejected" (requested expiry
	// beyond the maximum key lifetime).
	RecordLookup(ctx context.Context, result string)
}

// keyCacheMetrics implements KeyCacheMetrics using OpenTelemetry metrics.
type keyCacheMetrics struct {
	lookupCounter metric.Int64Counter
}

// NewKeyCacheMetrics creates a KeyCacheMetrics implementation using the provided meter provider.
func NewKeyCacheMetrics(meterProvider metric.MeterProvider, namespace string) (KeyCacheMetrics, error) {
	meter := meterProvider.Meter(namespace)

	lookupCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_key_cache_lookups_total", namespace),
		metric.WithDescription("Total number of asset key cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create key cache lookup counter: %w", err)
	}

	return &keyCacheMetrics{lookupCounter: lookupCounter}, nil
}

// RecordLookup increments the lookup counter with the result label.
func (k *keyCacheMetrics) RecordLookup(ctx context.Context, result string) {
	k.lookupCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("result", result)),
	)
}

// NoOpKeyCacheMetrics is a no-op implementation for when metrics are disabled.
type NoOpKeyCacheMetrics struct{}

// NewNoOpKeyCacheMetrics creates a no-op KeyCacheMetrics implementation.
func NewNoOpKeyCacheMetrics() KeyCacheMetrics {
	return &NoOpKeyCacheMetrics{}
}

// RecordLookup does nothing when metrics are disabled.
func (n *NoOpKeyCacheMetrics) RecordLookup(ctx context.Context, result string) {
	// No-op
}
