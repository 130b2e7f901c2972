// Package validation provides custom validation rules for the application.
package validation

import (
	"net/url"
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
)

var (
	// subdomainRegex matches DNS labels such as "images" or "my-cdn-1".
	subdomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// AbsoluteURL validates that a string is an absolute http(s) URL.
type AbsoluteURL struct{}

// Validate checks the value parses as a URL with a scheme and host.
func (a AbsoluteURL) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_absolute_url", "url must be a string")
	}

	parsed, err := url.Parse(s)
	if err != nil || parsed.Host == "" {
		return validation.NewError("validation_absolute_url", "url must be absolute")
	}

	switch parsed.Scheme {
	case "http", "https":
		return nil
	default:
		return validation.NewError("validation_absolute_url", "url scheme must be http or https")
	}
}

// Subdomain validates that a string is a single DNS label, suitable as an
// asset host subdomain.
type Subdomain struct{}

// Validate checks the value is a lowercase DNS label.
func (s Subdomain) Validate(value interface{}) error {
	label, ok := value.(string)
	if !ok {
		return validation.NewError("validation_subdomain", "subdomain must be a string")
	}

	if len(label) > 63 || !subdomainRegex.MatchString(label) {
		return validation.NewError("validation_subdomain", "subdomain must be a valid DNS label")
	}

	return nil
}
