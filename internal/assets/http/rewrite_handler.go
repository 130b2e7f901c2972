package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	assetsService "github.com/nvish-ganesh/contentful-embargoed-api/internal/assets/service"
	"github.com/nvish-ganesh/contentful-embargoed-api/internal/httputil"
)

// maxRewriteBodySize bounds how large a content document the rewrite
// endpoint accepts.
const maxRewriteBodySize = 8 << 20

// RewriteHandler rewrites secure asset URLs inside content API documents so
// they point back at this proxy.
type RewriteHandler struct {
	rewriter assetsService.URLRewriter
	logger   *slog.Logger
}

// NewRewriteHandler creates a new rewrite handler.
func NewRewriteHandler(rewriter assetsService.URLRewriter, logger *slog.Logger) *RewriteHandler {
	return &RewriteHandler{
		rewriter: rewriter,
		logger:   logger,
	}
}

// RewriteDocumentHandler rewrites every secure asset URL in the request body.
// POST /v1/rewrite - requires authorization.
// The body is treated as an opaque document; only asset origins are touched.
func (h *RewriteHandler) RewriteDocumentHandler(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRewriteBodySize))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	rewritten := h.rewriter.RewriteDocument(body)

	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/json"
	}

	c.Data(http.StatusOK, contentType, rewritten)
}
