package domain

import (
	"fmt"

	"github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
)

// Asset key errors.
var (
	// ErrExpiryOutOfRange indicates a caller asked for a key valid beyond the
	// maximum lifetime the authority can grant. No fetch is attempted.
	ErrExpiryOutOfRange = errors.Wrap(errors.ErrInvalidInput, "requested expiry exceeds the maximum asset key lifetime")
)

// FetchError is returned when the authority answers a key request with a
// non-success response. It wraps ErrUpstream so handlers can map it to a
// gateway failure without inspecting the concrete type.
type FetchError struct {
	// StatusCode is the HTTP status returned by the authority.
	StatusCode int
	// Detail is the error body returned by the authority, if any.
	Detail string
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("asset key fetch failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("asset key fetch failed with status %d: %s", e.StatusCode, e.Detail)
}

// Unwrap makes errors.Is(err, errors.ErrUpstream) hold for fetch failures.
func (e *FetchError) Unwrap() error {
	return errors.ErrUpstream
}
