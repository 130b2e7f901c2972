// Package usecase orchestrates asset key acquisition and token signing into
// the signed URL flow.
package usecase

import (
	"context"

	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
)

// SignURLUseCase is the entry point consumed by the routing layer: it turns
// an asset URL plus an expiry into a bearer-signed URL.
type SignURLUseCase interface {
	// SignURL obtains a sufficiently long-lived asset key, signs the
	// canonical form of the URL (origin and path, no query string) and
	// returns the original URL with token and policy parameters attached.
	SignURL(ctx context.Context, input *signingDomain.SignURLInput) (*signingDomain.SignURLOutput, error)
}
