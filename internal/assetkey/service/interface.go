// Package service provides asset key acquisition: the authority client and
// the process-wide single-flight cache in front of it.
package service

import (
	"context"
	"time"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
)

// AssetKeyFetcher obtains a fresh asset key from the remote authority.
// Implementations are stateless and perform exactly one network request per
// call; retries and caching are the cache layer's concern.
type AssetKeyFetcher interface {
	// Fetch requests a key for the scope that stays valid until expiresAt.
	// Any non-success response from the authority surfaces as *domain.FetchError.
	Fetch(ctx context.Context, scope keyDomain.Scope, accessToken string, expiresAt time.Time) (*keyDomain.AssetKey, error)
}

// AssetKeyCache serves asset keys from a process-wide cache, fetching from
// the authority only when no cached key satisfies the caller's minimum
// validity window. Concurrent callers for the same scope share one fetch.
type AssetKeyCache interface {
	// GetOrFetch returns a key for the scope valid at least until minExpiresAt.
	// Returns domain.ErrExpiryOutOfRange when minExpiresAt lies beyond the
	// maximum key lifetime.
	GetOrFetch(ctx context.Context, scope keyDomain.Scope, accessToken string, minExpiresAt time.Time) (*keyDomain.AssetKey, error)
}
