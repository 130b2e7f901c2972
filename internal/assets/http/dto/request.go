// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	customValidation "github.com/nvish-ganesh/contentful-embargoed-api/internal/validation"
)

// SignURLRequest contains the parameters for signing an asset URL.
type SignURLRequest struct {
	// URL is the asset URL to sign.
	URL string `json:"url" binding:"required"`
	// ExpiresInSeconds is how long the signed URL stays valid. Optional;
	// the server default applies when zero.
	ExpiresInSeconds int64 `json:"expires_in_seconds"`
}

// Validate checks if the sign URL request is valid.
func (r *SignURLRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.URL,
			validation.Required,
			customValidation.AbsoluteURL{},
		),
		validation.Field(&r.ExpiresInSeconds,
			validation.Min(int64(0)),
			validation.Max(int64(keyDomain.MaxKeyLifetime.Seconds())),
		),
	)
}
