package app

import (
	"fmt"

	keyService "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/service"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/metrics"
)

// KeyCacheMetrics returns the asset key cache metrics recorder.
// Falls back to a no-op implementation when metrics are disabled.
func (c *Container) KeyCacheMetrics() (metrics.KeyCacheMetrics, error) {
	var err error
	c.keyCacheMetricsInit.Do(func() {
		c.keyCacheMetrics, err = c.initKeyCacheMetrics()
		if err != nil {
			c.initErrors["keyCacheMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCacheMetrics"]; exists {
		return nil, storedErr
	}
	return c.keyCacheMetrics, nil
}

// AssetKeyFetcher returns the authority client for asset key fetches.
func (c *Container) AssetKeyFetcher() keyService.AssetKeyFetcher {
	c.keyFetcherInit.Do(func() {
		c.keyFetcher = keyService.NewAssetKeyFetcher(c.config.AuthorityTimeout, c.Logger())
	})
	return c.keyFetcher
}

// AssetKeyCache returns the process-wide asset key cache.
func (c *Container) AssetKeyCache() (keyService.AssetKeyCache, error) {
	var err error
	c.keyCacheInit.Do(func() {
		c.keyCache, err = c.initAssetKeyCache()
		if err != nil {
			c.initErrors["keyCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyCache"]; exists {
		return nil, storedErr
	}
	return c.keyCache, nil
}

// initKeyCacheMetrics creates the key cache metrics recorder.
func (c *Container) initKeyCacheMetrics() (metrics.KeyCacheMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for key cache metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpKeyCacheMetrics(), nil
	}
	return metrics.NewKeyCacheMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initAssetKeyCache creates the asset key cache with its fetcher and metrics.
func (c *Container) initAssetKeyCache() (keyService.AssetKeyCache, error) {
	cacheMetrics, err := c.KeyCacheMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache metrics for asset key cache: %w", err)
	}

	return keyService.NewAssetKeyCache(
		c.AssetKeyFetcher(),
		cacheMetrics,
		c.Logger(),
		c.config.KeyCacheJanitorInterval,
	), nil
}
