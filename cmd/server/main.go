package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/portfolio-comments-api/internal/api"
	"github.com/portfolio-comments-api/internal/config"
	"github.com/portfolio-comments-api/internal/database"
	"github.com/portfolio-comments-api/internal/projects"
	"github.com/portfolio-comments-api/internal/repository"
	"github.com/portfolio-comments-api/internal/service"
	"github.com/portfolio-comments-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting comments API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the comment store. A missing or unreachable database is
	// not fatal: the server degrades to the in-memory store so local
	// development works without credentials.
	var repo repository.CommentRepository
	mode := service.ModeMemory

	if cfg.DatabaseConfigured() {
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("Database unavailable, falling back to in-memory store")
		} else {
			defer db.Close()

			migrationsPath := os.Getenv("MIGRATIONS_PATH")
			if migrationsPath == "" {
				migrationsPath = "./migrations"
			}
			if err := db.RunMigrations(migrationsPath); err != nil {
				log.Warn().Err(err).Msg("Migrations failed, falling back to in-memory store")
			} else {
				repo = repository.NewCommentRepo(db)
				mode = service.ModePostgres
			}
		}
	} else {
		log.Warn().Msg("Database credentials not found, starting in in-memory fallback mode")
	}

	if repo == nil {
		repo = repository.NewMemoryRepo()
	}

	// Initialize services
	services := service.NewServices(repo, mode, log)

	// Load the project catalog (non-fatal if missing)
	catalog := projects.Load(cfg.Server.ProjectsFile, log)

	// Initialize router
	router := api.NewRouter(services, catalog, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("mode", mode).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
