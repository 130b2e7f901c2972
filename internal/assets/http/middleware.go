package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/nvish-ganesh/contentful-embargoed-api/internal/errors"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/httputil"
)

// AuthorizationMiddleware rejects requests the configured authorizer denies.
// The predicate is deployment-supplied; the signing core itself never makes
// authorization decisions.
func AuthorizationMiddleware(authorize Authorizer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c.Request) {
			logger.Debug("request denied by authorizer",
				slog.String("path", c.Request.URL.Path),
			)
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
