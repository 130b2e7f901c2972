package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	assetsHTTP "github.com/nvish-ganesh/contentful-embargoed-api/internal/assets/http"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/config"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server and registers all routes. Middleware
// order: recovery, request id, logging, CORS (when enabled), then
// authorization and rate limiting on the signing routes.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	signHandler *assetsHTTP.SignHandler,
	assetHandler *assetsHTTP.AssetHandler,
	rewriteHandler *assetsHTTP.RewriteHandler,
	authorizer assetsHTTP.Authorizer,
	extraMiddlewares ...gin.HandlerFunc,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	for _, middleware := range extraMiddlewares {
		router.Use(middleware)
	}

	// Health and readiness endpoints, outside all auth and limits.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	authMiddleware := assetsHTTP.AuthorizationMiddleware(authorizer, logger)

	signing := router.Group("/", authMiddleware)
	if cfg.RateLimitEnabled {
		signing.Use(assetsHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	v1 := signing.Group("/v1")
	v1.POST("/sign", signHandler.SignURLHandler)
	v1.POST("/rewrite", rewriteHandler.RewriteDocumentHandler)

	signing.GET("/a/:subdomain/*asset", assetHandler.RedirectHandler)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
