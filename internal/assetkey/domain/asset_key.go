// Package domain defines the asset key model and the scope that namespaces
// keys issued by the remote authority.
package domain

import "time"

// MaxKeyLifetime is the longest validity window the authority will grant for
// an asset key. Cache entries are always requested with this horizon so that
// callers with shorter requirements can share a single fetch.
const MaxKeyLifetime = 48 * time.Hour

// Secret is the signing secret of an asset key. It redacts itself in
// String, GoString and text marshaling so it can never leak through logs,
// fmt verbs or JSON encoding. The raw value is only reachable via Value,
// which must be called exclusively on the signing path.
type Secret string

const secretRedacted = "[REDACTED]"

// String returns the redacted placeholder.
func (s Secret) String() string { return secretRedacted }

// GoString returns the redacted placeholder.
func (s Secret) GoString() string { return secretRedacted }

// MarshalText returns the redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte(secretRedacted), nil }

// Value returns the raw secret for use as a signing key.
func (s Secret) Value() string { return string(s) }

// AssetKey is a signing credential issued by the remote authority.
// Immutable once obtained.
type AssetKey struct {
	// Policy identifies the access policy the key was issued under. It is
	// attached verbatim to signed URLs as the "policy" query parameter.
	Policy string
	// Secret is the symmetric signing secret. Never logged.
	Secret Secret
	// ExpiresAt is the instant the authority stops accepting tokens signed
	// with this key.
	ExpiresAt time.Time
}

// Scope identifies a distinct asset key namespace at the authority.
type Scope struct {
	// Host is the authority host, e.g. "api.contentful.com".
	Host string
	// SpaceID is the space the keys are scoped to.
	SpaceID string
	// EnvironmentID is the environment within the space.
	EnvironmentID string
}

// CacheKey returns the lookup key used by the asset key cache. The separator
// cannot occur in hostnames or Contentful identifiers, so distinct scopes
// never collide.
func (s Scope) CacheKey() string {
	return s.Host + "!" + s.SpaceID + "!" + s.EnvironmentID
}
