package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	keyDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/assetkey/domain"
	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
)

// tokenSigner implements TokenSigner using HS256 JWTs. The CDN verifies
// tokens with the same secret the authority issued, so the signer uses the
// raw secret as the HMAC key without derivation.
type tokenSigner struct{}

// NewTokenSigner creates a new HS256 token signer.
func NewTokenSigner() TokenSigner {
	return &tokenSigner{}
}

// Sign encodes subject=canonicalURL and exp=expiresAt (unix seconds) into a
// JWT signed with the asset key secret.
func (t *tokenSigner) Sign(
	secret keyDomain.Secret,
	canonicalURL string,
	expiresAt time.Time,
) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   canonicalURL,
		ExpiresAt: jwt.NewNumericDate(expiresAt.Truncate(time.Second)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(secret.Value()))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

// Verify parses the token, checks the HS256 signature and returns the bound
// subject and expiry. Expired tokens fail verification.
func (t *tokenSigner) Verify(
	secret keyDomain.Secret,
	token string,
) (string, time.Time, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(tok *jwt.Token) (any, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
			}
			return []byte(secret.Value()), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "token verification failed")
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return "", time.Time{}, apperrors.New("token has malformed claims")
	}

	return claims.Subject, claims.ExpiresAt.Time, nil
}
