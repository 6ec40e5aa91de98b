package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/projects"
)

// ProjectHandler serves the static project catalog
type ProjectHandler struct {
	catalog *projects.Catalog
	log     zerolog.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(catalog *projects.Catalog, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		catalog: catalog,
		log:     log.With().Str("handler", "project").Logger(),
	}
}

// GetProject handles GET /api/projects/:slug
func (h *ProjectHandler) GetProject(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug"})
		return
	}

	project, ok := h.catalog.Get(slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}
