package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
)

func TestTokenSigner(t *testing.T) {
	secret := keyDomain.Secret("asset-key-secret")
	canonicalURL := "https://sub.secure.ctfassets.net/sp1/asset-id/hash/cat.jpg"

	t.Run("Success_SignAndVerifyRoundTrip", func(t *testing.T) {
		signer := NewTokenSigner()
		expiresAt := time.Now().Add(15 * time.Minute)

		token, err := signer.Sign(secret, canonicalURL, expiresAt)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, gotExpiry, err := signer.Verify(secret, token)
		require.NoError(t, err)
		assert.Equal(t, canonicalURL, subject)
		assert.Equal(t, expiresAt.Truncate(time.Second).Unix(), gotExpiry.Unix())
	})

	t.Run("Success_ExpiryTruncatedToSeconds", func(t *testing.T) {
		signer := NewTokenSigner()
		expiresAt := time.Unix(1756646400, 999_000_000)

		token, err := signer.Sign(secret, canonicalURL, expiresAt)
		require.NoError(t, err)

		_, gotExpiry, err := signer.Verify(secret, token)
		require.NoError(t, err)
		assert.Equal(t, int64(1756646400), gotExpiry.Unix())
	})

	t.Run("Success_DeterministicForIdenticalInputs", func(t *testing.T) {
		signer := NewTokenSigner()
		expiresAt := time.Now().Add(time.Hour)

		first, err := signer.Sign(secret, canonicalURL, expiresAt)
		require.NoError(t, err)
		second, err := signer.Sign(secret, canonicalURL, expiresAt)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Error_TamperedTokenFailsVerification", func(t *testing.T) {
		signer := NewTokenSigner()

		token, err := signer.Sign(secret, canonicalURL, time.Now().Add(time.Hour))
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		forged := parts[0] + "." + parts[1] + "x." + parts[2]

		_, _, err = signer.Verify(secret, forged)
		assert.Error(t, err)
	})

	t.Run("Error_WrongSecretFailsVerification", func(t *testing.T) {
		signer := NewTokenSigner()

		token, err := signer.Sign(secret, canonicalURL, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, _, err = signer.Verify(keyDomain.Secret("another-secret"), token)
		assert.Error(t, err)
	})

	t.Run("Error_ExpiredTokenFailsVerification", func(t *testing.T) {
		signer := NewTokenSigner()

		token, err := signer.Sign(secret, canonicalURL, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, _, err = signer.Verify(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Error_UnsignedAlgorithmRejected", func(t *testing.T) {
		signer := NewTokenSigner()

		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   canonicalURL,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, _, err = signer.Verify(secret, unsigned)
		assert.Error(t, err)
	})
}
