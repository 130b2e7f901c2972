package dto

import "time"

// SignURLResponse is returned after a URL has been signed.
type SignURLResponse struct {
	// URL is the signed URL with token and policy query parameters attached.
	URL string `json:"url"`
	// Policy identifies the access policy the signing key was issued under.
	Policy string `json:"policy"`
	// ExpiresAt is when the signed URL stops being valid.
	ExpiresAt time.Time `json:"expires_at"`
}
