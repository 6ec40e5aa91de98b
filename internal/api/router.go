package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/config"
	"github.com/portfolio-comments-api/internal/projects"
	"github.com/portfolio-comments-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, catalog *projects.Catalog, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.CORSOrigins))
	router.Use(bodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	// Handlers
	commentHandler := NewCommentHandler(services, log)
	projectHandler := NewProjectHandler(catalog, log)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", healthCheck(services))

		projectGroup := apiGroup.Group("/projects")
		{
			projectGroup.GET("/:slug", projectHandler.GetProject)
			projectGroup.GET("/:slug/comments", commentHandler.GetComments)
			projectGroup.POST("/:slug/comments", commentHandler.PostComment)
			projectGroup.POST("/:slug/migrate", commentHandler.Migrate)
		}
	}

	return router
}

// healthCheck reports whether the durable store is in use. The server
// answers 200 in memory-only mode as well; callers read "store" to tell
// the difference.
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":    true,
			"store": services.Comment.StoreReady(),
			"mode":  services.Comment.Mode(),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware allows the configured origins. Requests without an
// Origin header (curl, same-origin) always pass.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	wildcard := false
	allowedSet := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			wildcard = true
		}
		allowedSet[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !wildcard && !allowedSet[origin] {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
				return
			}
			if wildcard {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Vary", "Origin")
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// bodyLimitMiddleware caps request body size on write endpoints
func bodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
