package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvish-ganesh/contentful-embargoed-api/internal/httputil"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
	signingUseCase "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/usecase"
	customValidation "github.com/nvish-ganesh/contentful-embargoed-api/internal/validation"
)

// AssetHandler maps inbound asset paths onto the secure asset host and
// redirects callers to the signed upstream URL.
type AssetHandler struct {
	signUseCase     signingUseCase.SignURLUseCase
	scope           ScopeConfig
	secureAssetHost string
	defaultTTL      time.Duration
	logger          *slog.Logger
}

// NewAssetHandler creates a new asset redirect handler.
func NewAssetHandler(
	signUseCase signingUseCase.SignURLUseCase,
	scope ScopeConfig,
	secureAssetHost string,
	defaultTTL time.Duration,
	logger *slog.Logger,
) *AssetHandler {
	return &AssetHandler{
		signUseCase:     signUseCase,
		scope:           scope,
		secureAssetHost: secureAssetHost,
		defaultTTL:      defaultTTL,
		logger:          logger,
	}
}

// RedirectHandler signs the upstream asset URL and redirects to it.
// GET /a/:subdomain/*asset - requires authorization.
// The inbound query string (e.g. image transform parameters) is preserved on
// the redirect target; the signature does not cover it.
func (h *AssetHandler) RedirectHandler(c *gin.Context) {
	subdomain := c.Param("subdomain")
	if err := (customValidation.Subdomain{}).Validate(subdomain); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	assetPath := c.Param("asset")
	upstream := "https://" + subdomain + "." + h.secureAssetHost + assetPath
	if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
		upstream += "?" + rawQuery
	}

	input := &signingDomain.SignURLInput{
		Host:          h.scope.Host,
		AccessToken:   h.scope.AccessToken,
		SpaceID:       h.scope.SpaceID,
		EnvironmentID: h.scope.EnvironmentID,
		URL:           upstream,
		ExpiresAt:     time.Now().Add(h.defaultTTL),
	}

	output, err := h.signUseCase.SignURL(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Redirect(http.StatusFound, output.URL)
}
