// Package service provides the bearer token signer used for signed asset URLs.
package service

import (
	"time"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
)

// TokenSigner produces and checks the bearer tokens embedded in signed URLs.
// Pure and deterministic for identical inputs; no network or cache interaction.
type TokenSigner interface {
	// Sign binds the canonical URL and expiry into a tamper-evident token
	// signed with the asset key secret. The expiry is truncated to seconds.
	Sign(secret keyDomain.Secret, canonicalURL string, expiresAt time.Time) (string, error)

	// Verify checks a token against the secret and returns the subject and
	// expiry it was signed with.
	Verify(secret keyDomain.Secret, token string) (canonicalURL string, expiresAt time.Time, err error)
}
