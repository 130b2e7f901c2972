package usecase

import (
	"context"
	"log/slog"
	"net/url"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	keyService "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/service"
	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
	signingService "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/service"
)

// signURLUseCase implements SignURLUseCase on top of the asset key cache and
// the token signer.
type signURLUseCase struct {
	keyCache keyService.AssetKeyCache
	signer   signingService.TokenSigner
	logger   *slog.Logger
}

// NewSignURLUseCase creates a new sign URL use case.
func NewSignURLUseCase(
	keyCache keyService.AssetKeyCache,
	signer signingService.TokenSigner,
	logger *slog.Logger,
) SignURLUseCase {
	return &signURLUseCase{
		keyCache: keyCache,
		signer:   signer,
		logger:   logger,
	}
}

// SignURL signs the canonical form of input.URL and reassembles the full URL
// with token and policy query parameters. The signature covers only origin
// and path, so query parameters such as image transforms may vary freely
// without invalidating it.
func (u *signURLUseCase) SignURL(
	ctx context.Context,
	input *signingDomain.SignURLInput,
) (*signingDomain.SignURLOutput, error) {
	parsed, err := url.Parse(input.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, signingDomain.ErrInvalidURL
	}

	scope := keyDomain.Scope{
		Host:          input.Host,
		SpaceID:       input.SpaceID,
		EnvironmentID: input.EnvironmentID,
	}

	// The signed URL must stay verifiable until input.ExpiresAt, so that is
	// the minimum validity required of the key.
	key, err := u.keyCache.GetOrFetch(ctx, scope, input.AccessToken, input.ExpiresAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to obtain asset key")
	}

	canonical := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
	}

	token, err := u.signer.Sign(key.Secret, canonical.String(), input.ExpiresAt)
	if err != nil {
		return nil, err
	}

	query := parsed.Query()
	query.Set(signingDomain.TokenParam, token)
	query.Set(signingDomain.PolicyParam, key.Policy)
	parsed.RawQuery = query.Encode()

	u.logger.Debug("url signed",
		slog.String("subject", canonical.String()),
		slog.Time("expires_at", input.ExpiresAt),
		slog.String("policy", key.Policy),
	)

	return &signingDomain.SignURLOutput{
		URL:       parsed.String(),
		Policy:    key.Policy,
		ExpiresAt: input.ExpiresAt,
	}, nil
}
