// Package domain defines the inputs and outputs of the URL signing flow.
package domain

import (
	"time"

	"github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
)

// Query parameter names attached to signed URLs. Pre-existing parameters with
// these names are overwritten, never duplicated.
const (
	TokenParam  = "token"
	PolicyParam = "policy"
)

// URL signing errors.
var (
	// ErrInvalidURL indicates the URL to sign is malformed or not absolute.
	ErrInvalidURL = errors.Wrap(errors.ErrInvalidInput, "url must be absolute with a scheme and host")
)

// SignURLInput carries everything needed to produce a signed URL.
type SignURLInput struct {
	// Host is the authority host keys are fetched from.
	Host string
	// AccessToken authenticates the key fetch at the authority.
	AccessToken string
	// SpaceID and EnvironmentID select the asset key namespace.
	SpaceID       string
	EnvironmentID string
	// URL is the asset URL to sign. Its query parameters are preserved in the
	// output but excluded from the signed subject.
	URL string
	// ExpiresAt is when the signed URL stops being valid. It is also the
	// minimum validity required of the asset key used for signing.
	ExpiresAt time.Time
}

// SignURLOutput is the result of signing a URL.
type SignURLOutput struct {
	// URL is the input URL with token and policy query parameters attached.
	URL string
	// Policy is the policy identifier of the key that signed the URL.
	Policy string
	// ExpiresAt echoes the expiry the token was bound to.
	ExpiresAt time.Time
}
