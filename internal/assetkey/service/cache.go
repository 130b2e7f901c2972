package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/metrics"
)

// cacheEntry is the unit of sharing in the cache: one entry per scope holds
// either an in-flight fetch or its outcome. All callers that observed the
// entry wait on the same done channel; key and err are written exactly once,
// before done is closed.
type cacheEntry struct {
	// id is a generation stamp used only for log correlation.
	id uuid.UUID
	// expiresAt is the horizon the fetch was issued with. Always the maximum
	// key lifetime from the moment the entry was installed, so callers with
	// shorter requirements can join it.
	expiresAt time.Time

	done chan struct{}
	key  *keyDomain.AssetKey
	err  error
}

// wait blocks until the entry resolves or the caller's context ends. An
// abandoned wait does not cancel the underlying fetch; the entry stays
// usable for other callers.
func (e *cacheEntry) wait(ctx context.Context) (*keyDomain.AssetKey, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
		return e.key, e.err
	}
}

// assetKeyCache implements AssetKeyCache with a mutex-guarded map of scope
// keys to entries. The mutex only covers map reads and entry installation;
// waiting for a fetch happens outside it.
type assetKeyCache struct {
	fetcher AssetKeyFetcher
	metrics metrics.KeyCacheMetrics
	logger  *slog.Logger

	// now is swapped in tests to control the clock.
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewAssetKeyCache creates an empty cache backed by the given fetcher. When
// janitorInterval is positive, a cleanup goroutine periodically drops entries
// whose horizon has passed; correctness does not depend on it, it only bounds
// memory for scopes that stop being used. metricsRecorder may be nil.
func NewAssetKeyCache(
	fetcher AssetKeyFetcher,
	metricsRecorder metrics.KeyCacheMetrics,
	logger *slog.Logger,
	janitorInterval time.Duration,
) AssetKeyCache {
	cache := &assetKeyCache{
		fetcher: fetcher,
		metrics: metricsRecorder,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*cacheEntry),
	}

	if janitorInterval > 0 {
		go cache.cleanupExpired(context.Background(), janitorInterval)
	}

	return cache
}

// GetOrFetch returns a cached key valid at least until minExpiresAt, joining
// an in-flight fetch when one exists, or starts a new fetch with the maximum
// key lifetime as its horizon.
func (c *assetKeyCache) GetOrFetch(
	ctx context.Context,
	scope keyDomain.Scope,
	accessToken string,
	minExpiresAt time.Time,
) (*keyDomain.AssetKey, error) {
	scopeKey := scope.CacheKey()

	c.mu.Lock()
	if entry, ok := c.entries[scopeKey]; ok && !entry.expiresAt.Before(minExpiresAt) {
		c.mu.Unlock()
		c.recordLookup(ctx, "hit")
		return entry.wait(ctx)
	}

	freshExpiresAt := c.now().Add(keyDomain.MaxKeyLifetime)
	if minExpiresAt.After(freshExpiresAt) {
		c.mu.Unlock()
		c.recordLookup(ctx, "rejected")
		return nil, keyDomain.ErrExpiryOutOfRange
	}

	entry := &cacheEntry{
		id:        uuid.New(),
		expiresAt: freshExpiresAt,
		done:      make(chan struct{}),
	}
	// Replaces any prior entry for the scope, including a stale ready one.
	// The old entry keeps serving callers that already hold it.
	c.entries[scopeKey] = entry
	c.mu.Unlock()

	c.recordLookup(ctx, "miss")
	c.logger.Debug("asset key fetch started",
		slog.String("scope", scopeKey),
		slog.String("entry_id", entry.id.String()),
		slog.Time("expires_at", freshExpiresAt),
	)

	// The fetch is detached from the triggering caller so that abandoning the
	// wait never fails the fetch for the other callers sharing the entry.
	go c.resolve(context.WithoutCancel(ctx), entry, scopeKey, scope, accessToken, freshExpiresAt)

	return entry.wait(ctx)
}

// resolve runs the fetch for an installed entry and publishes the outcome.
// On failure the entry is removed only when it is still the one this fetch
// installed: a newer entry racing in must not be evicted by a late failure.
func (c *assetKeyCache) resolve(
	ctx context.Context,
	entry *cacheEntry,
	scopeKey string,
	scope keyDomain.Scope,
	accessToken string,
	expiresAt time.Time,
) {
	key, err := c.fetcher.Fetch(ctx, scope, accessToken, expiresAt)
	if err != nil {
		c.mu.Lock()
		if c.entries[scopeKey] == entry {
			delete(c.entries, scopeKey)
		}
		c.mu.Unlock()

		c.logger.Warn("asset key fetch failed",
			slog.String("scope", scopeKey),
			slog.String("entry_id", entry.id.String()),
			slog.Any("error", err),
		)

		entry.err = err
		close(entry.done)
		return
	}

	entry.key = key
	close(entry.done)
}

// cleanupExpired periodically removes entries whose horizon has passed.
func (c *assetKeyCache) cleanupExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}

// purgeExpired removes every entry whose horizon has passed and returns how
// many were dropped.
func (c *assetKeyCache) purgeExpired() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for scopeKey, entry := range c.entries {
		if entry.expiresAt.Before(now) {
			delete(c.entries, scopeKey)
			purged++
		}
	}
	return purged
}

// recordLookup reports a cache lookup outcome when metrics are enabled.
func (c *assetKeyCache) recordLookup(ctx context.Context, result string) {
	if c.metrics != nil {
		c.metrics.RecordLookup(ctx, result)
	}
}
