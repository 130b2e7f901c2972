package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvish-ganesh/contentful-embargoed-api/internal/assets/http/dto"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/httputil"
	signingDomain "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/domain"
	signingUseCase "github.com/nvish-ganesh/contentful-embargoed-api/internal/signing/usecase"
	customValidation "github.com/nvish-ganesh/contentful-embargoed-api/internal/validation"
)

// ScopeConfig pins the handlers to one asset key namespace at the authority.
// The space and environment a deployment serves are fixed at startup.
type ScopeConfig struct {
	// Host is the authority host asset keys are fetched from.
	Host string
	// SpaceID and EnvironmentID select the key namespace.
	SpaceID       string
	EnvironmentID string
	// AccessToken authenticates key fetches at the authority.
	AccessToken string
}

// SignHandler handles HTTP requests for URL signing.
type SignHandler struct {
	signUseCase signingUseCase.SignURLUseCase
	scope       ScopeConfig
	defaultTTL  time.Duration
	logger      *slog.Logger
}

// NewSignHandler creates a new sign handler with required dependencies.
func NewSignHandler(
	signUseCase signingUseCase.SignURLUseCase,
	scope ScopeConfig,
	defaultTTL time.Duration,
	logger *slog.Logger,
) *SignHandler {
	return &SignHandler{
		signUseCase: signUseCase,
		scope:       scope,
		defaultTTL:  defaultTTL,
		logger:      logger,
	}
}

// SignURLHandler signs an asset URL for bearer access.
// POST /v1/sign - requires authorization.
// Returns 200 OK with the signed URL and its expiry.
func (h *SignHandler) SignURLHandler(c *gin.Context) {
	var req dto.SignURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ttl := h.defaultTTL
	if req.ExpiresInSeconds > 0 {
		ttl = time.Duration(req.ExpiresInSeconds) * time.Second
	}
	expiresAt := time.Now().Add(ttl)

	input := &signingDomain.SignURLInput{
		Host:          h.scope.Host,
		AccessToken:   h.scope.AccessToken,
		SpaceID:       h.scope.SpaceID,
		EnvironmentID: h.scope.EnvironmentID,
		URL:           req.URL,
		ExpiresAt:     expiresAt,
	}

	output, err := h.signUseCase.SignURL(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.SignURLResponse{
		URL:       output.URL,
		Policy:    output.Policy,
		ExpiresAt: output.ExpiresAt,
	}

	c.JSON(http.StatusOK, response)
}
