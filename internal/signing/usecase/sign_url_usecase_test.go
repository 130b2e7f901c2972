package usecase

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
)

// MockAssetKeyCache is a mock implementation of service.AssetKeyCache.
type MockAssetKeyCache struct {
	mock.Mock
}

func (m *MockAssetKeyCache) GetOrFetch(
	ctx context.Context,
	scope keyDomain.Scope,
	accessToken string,
	minExpiresAt time.Time,
) (*keyDomain.AssetKey, error) {
	args := m.Called(ctx, scope, accessToken, minExpiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keyDomain.AssetKey), args.Error(1)
}

// MockTokenSigner is a mock implementation of service.TokenSigner.
type MockTokenSigner struct {
	mock.Mock
}

func (m *MockTokenSigner) Sign(
	secret keyDomain.Secret,
	canonicalURL string,
	expiresAt time.Time,
) (string, error) {
	args := m.Called(secret, canonicalURL, expiresAt)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) Verify(secret keyDomain.Secret, token string) (string, time.Time, error) {
	args := m.Called(secret, token)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func testInput(rawURL string, expiresAt time.Time) *signingDomain.SignURLInput {
	return &signingDomain.SignURLInput{
		Host:          "api.contentful.com",
		AccessToken:   "cda-token",
		SpaceID:       "sp1",
		EnvironmentID: "master",
		URL:           rawURL,
		ExpiresAt:     expiresAt,
	}
}

func newTestUseCase(cache *MockAssetKeyCache, signer *MockTokenSigner) SignURLUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSignURLUseCase(cache, signer, logger)
}

func TestSignURLUseCase(t *testing.T) {
	expiresAt := time.Now().Add(15 * time.Minute)
	key := &keyDomain.AssetKey{
		Policy:    "policy-token",
		Secret:    keyDomain.Secret("asset-key-secret"),
		ExpiresAt: time.Now().Add(keyDomain.MaxKeyLifetime),
	}

	t.Run("Success_SignURL", func(t *testing.T) {
		cache := new(MockAssetKeyCache)
		signer := new(MockTokenSigner)
		useCase := newTestUseCase(cache, signer)

		wantScope := keyDomain.Scope{
			Host:          "api.contentful.com",
			SpaceID:       "sp1",
			EnvironmentID: "master",
		}
		// The key minimum is exactly the URL's expiry.
		cache.On("GetOrFetch", mock.Anything, wantScope, "cda-token", expiresAt).Return(key, nil)
		// The signed subject is origin and path only, no query string.
		signer.On("Sign", key.Secret, "https://sub.secure.ctfassets.net/sp1/asset/cat.jpg", expiresAt).
			Return("signed-token", nil)

		output, err := useCase.SignURL(
			context.Background(),
			testInput("https://sub.secure.ctfassets.net/sp1/asset/cat.jpg?w=200&h=100", expiresAt),
		)
		require.NoError(t, err)

		signed, err := url.Parse(output.URL)
		require.NoError(t, err)
		query := signed.Query()
		assert.Equal(t, "signed-token", query.Get("token"))
		assert.Equal(t, "policy-token", query.Get("policy"))
		assert.Equal(t, "200", query.Get("w"), "pre-existing query parameters are preserved")
		assert.Equal(t, "100", query.Get("h"))
		assert.Equal(t, "sub.secure.ctfassets.net", signed.Host)
		assert.Equal(t, "/sp1/asset/cat.jpg", signed.Path)

		assert.Equal(t, "policy-token", output.Policy)
		assert.Equal(t, expiresAt, output.ExpiresAt)

		cache.AssertExpectations(t)
		signer.AssertExpectations(t)
	})

	t.Run("Success_ExistingTokenAndPolicyParamsOverwritten", func(t *testing.T) {
		cache := new(MockAssetKeyCache)
		signer := new(MockTokenSigner)
		useCase := newTestUseCase(cache, signer)

		cache.On("GetOrFetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(key, nil)
		signer.On("Sign", key.Secret, "https://sub.secure.ctfassets.net/asset.jpg", expiresAt).
			Return("fresh-token", nil)

		output, err := useCase.SignURL(
			context.Background(),
			testInput("https://sub.secure.ctfassets.net/asset.jpg?token=stale&policy=stale", expiresAt),
		)
		require.NoError(t, err)

		signed, err := url.Parse(output.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh-token"}, signed.Query()["token"])
		assert.Equal(t, []string{"policy-token"}, signed.Query()["policy"])
	})

	t.Run("Error_RelativeURL", func(t *testing.T) {
		cache := new(MockAssetKeyCache)
		signer := new(MockTokenSigner)
		useCase := newTestUseCase(cache, signer)

		for _, rawURL := range []string{"/just/a/path", "not a url at all", "://missing-scheme", "https://"} {
			_, err := useCase.SignURL(context.Background(), testInput(rawURL, expiresAt))
			assert.ErrorIs(t, err, signingDomain.ErrInvalidURL, "url: %s", rawURL)
		}
		cache.AssertNotCalled(t, "GetOrFetch")
		signer.AssertNotCalled(t, "Sign")
	})

	t.Run("Error_KeyCacheFailurePropagates", func(t *testing.T) {
		cache := new(MockAssetKeyCache)
		signer := new(MockTokenSigner)
		useCase := newTestUseCase(cache, signer)

		cache.On("GetOrFetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, keyDomain.ErrExpiryOutOfRange)

		_, err := useCase.SignURL(
			context.Background(),
			testInput("https://sub.secure.ctfassets.net/asset.jpg", expiresAt),
		)
		assert.ErrorIs(t, err, keyDomain.ErrExpiryOutOfRange)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		signer.AssertNotCalled(t, "Sign")
	})

	t.Run("Error_SignerFailurePropagates", func(t *testing.T) {
		cache := new(MockAssetKeyCache)
		signer := new(MockTokenSigner)
		useCase := newTestUseCase(cache, signer)

		wantErr := apperrors.New("signing blew up")
		cache.On("GetOrFetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(key, nil)
		signer.On("Sign", mock.Anything, mock.Anything, mock.Anything).Return("", wantErr)

		_, err := useCase.SignURL(
			context.Background(),
			testInput("https://sub.secure.ctfassets.net/asset.jpg", expiresAt),
		)
		assert.ErrorIs(t, err, wantErr)
	})
}
