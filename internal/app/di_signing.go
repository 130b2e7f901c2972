package app

import (
	"fmt"

	assetsHTTP "github.com/nvish-ganesh/contentful-embargoed-api/internal/assets/http"
	assetsService "github.com/nvish-ganesh/contentful-embargoed-api/internal/assets/service"
	signingService "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/service"
	signingUseCase "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/usecase"
)

// TokenSigner returns the bearer token signer.
func (c *Container) TokenSigner() signingService.TokenSigner {
	c.tokenSignerInit.Do(func() {
		c.tokenSigner = signingService.NewTokenSigner()
	})
	return c.tokenSigner
}

// URLRewriter returns the asset URL rewriter.
func (c *Container) URLRewriter() assetsService.URLRewriter {
	c.urlRewriterInit.Do(func() {
		c.urlRewriter = assetsService.NewURLRewriter(c.config.SecureAssetHost, c.config.PublicBaseURL)
	})
	return c.urlRewriter
}

// Authorizer returns the request authorizer. With no configured request
// token, every request is allowed and authentication is assumed to happen
// upstream.
func (c *Container) Authorizer() assetsHTTP.Authorizer {
	c.authorizerInit.Do(func() {
		if c.config.RequestAuthToken == "" {
			c.authorizer = assetsHTTP.AllowAllAuthorizer()
			return
		}
		c.authorizer = assetsHTTP.StaticTokenAuthorizer(c.config.RequestAuthToken)
	})
	return c.authorizer
}

// SignURLUseCase returns the URL signing use case.
func (c *Container) SignURLUseCase() (signingUseCase.SignURLUseCase, error) {
	var err error
	c.signURLUseCaseInit.Do(func() {
		c.signURLUseCase, err = c.initSignURLUseCase()
		if err != nil {
			c.initErrors["signURLUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signURLUseCase"]; exists {
		return nil, storedErr
	}
	return c.signURLUseCase, nil
}

// SignHandler returns the HTTP handler for the sign endpoint.
func (c *Container) SignHandler() (*assetsHTTP.SignHandler, error) {
	useCase, err := c.SignURLUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get sign url use case for sign handler: %w", err)
	}

	return assetsHTTP.NewSignHandler(
		useCase,
		c.scopeConfig(),
		c.config.SignedURLTTL,
		c.Logger(),
	), nil
}

// AssetHandler returns the HTTP handler for the asset redirect boundary.
func (c *Container) AssetHandler() (*assetsHTTP.AssetHandler, error) {
	useCase, err := c.SignURLUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get sign url use case for asset handler: %w", err)
	}

	return assetsHTTP.NewAssetHandler(
		useCase,
		c.scopeConfig(),
		c.config.SecureAssetHost,
		c.config.SignedURLTTL,
		c.Logger(),
	), nil
}

// RewriteHandler returns the HTTP handler for content document rewriting.
func (c *Container) RewriteHandler() *assetsHTTP.RewriteHandler {
	return assetsHTTP.NewRewriteHandler(c.URLRewriter(), c.Logger())
}

// initSignURLUseCase creates the sign URL use case with metrics decoration.
func (c *Container) initSignURLUseCase() (signingUseCase.SignURLUseCase, error) {
	keyCache, err := c.AssetKeyCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get asset key cache for sign url use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for sign url use case: %w", err)
	}

	useCase := signingUseCase.NewSignURLUseCase(keyCache, c.TokenSigner(), c.Logger())

	return signingUseCase.NewSignURLUseCaseWithMetrics(useCase, businessMetrics), nil
}

// scopeConfig builds the handler scope configuration from the deployment config.
func (c *Container) scopeConfig() assetsHTTP.ScopeConfig {
	return assetsHTTP.ScopeConfig{
		Host:          c.config.AuthorityHost,
		SpaceID:       c.config.SpaceID,
		EnvironmentID: c.config.EnvironmentID,
		AccessToken:   c.config.AuthorityAccessToken,
	}
}
