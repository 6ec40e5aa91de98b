package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/service"
	"github.com/portfolio-comments-api/internal/validation"
)

// CommentHandler handles the comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// GetComments handles GET /api/projects/:slug/comments
func (h *CommentHandler) GetComments(c *gin.Context) {
	ctx := c.Request.Context()

	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug"})
		return
	}

	comments, err := h.services.Comment.List(ctx, slug)
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// PostComment handles POST /api/projects/:slug/comments
func (h *CommentHandler) PostComment(c *gin.Context) {
	ctx := c.Request.Context()

	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug"})
		return
	}

	var raw validation.RawComment
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	comment, err := h.services.Comment.Post(ctx, slug, raw)
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to store comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.log.Info().
		Str("slug", slug).
		Int("rating", comment.Rating).
		Int64("time", comment.Time).
		Msg("Comment stored")

	c.JSON(http.StatusCreated, gin.H{"ok": true, "comment": comment})
}

// Migrate handles POST /api/projects/:slug/migrate
func (h *CommentHandler) Migrate(c *gin.Context) {
	ctx := c.Request.Context()

	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug"})
		return
	}

	var req struct {
		Comments []validation.RawComment `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if len(req.Comments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No comments provided"})
		return
	}

	count, err := h.services.Comment.Migrate(ctx, slug, req.Comments)
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Migration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "count": count})
}
