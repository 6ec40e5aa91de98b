package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/models"
	"github.com/portfolio-comments-api/internal/repository"
	"github.com/portfolio-comments-api/internal/validation"
)

// Store mode values reported by the health endpoint
const (
	ModePostgres = "postgres"
	ModeMemory   = "memory"
)

// CommentService defines the operations exposed over the comment store
type CommentService interface {
	List(ctx context.Context, slug string) ([]models.Comment, error)
	Post(ctx context.Context, slug string, raw validation.RawComment) (models.Comment, error)
	Migrate(ctx context.Context, slug string, raws []validation.RawComment) (int, error)
	Mode() string
	StoreReady() bool
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
}

// NewServices creates all services. mode records whether the repository
// is the durable Postgres store or the in-memory fallback.
func NewServices(repo repository.CommentRepository, mode string, log zerolog.Logger) *Services {
	return &Services{
		Comment: newCommentService(repo, mode, log),
	}
}
