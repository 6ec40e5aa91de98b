package repository

import (
	"context"

	"github.com/portfolio-comments-api/internal/models"
)

// CommentRepository defines the interface for comment data operations.
// ListBySlug returns comments newest first. BulkInsert commits the whole
// batch in one transaction on the durable store and returns the number
// of rows written; an empty batch returns (0, nil) without touching the
// store.
type CommentRepository interface {
	ListBySlug(ctx context.Context, slug string) ([]models.Comment, error)
	Insert(ctx context.Context, slug string, comment models.Comment) error
	BulkInsert(ctx context.Context, slug string, comments []models.Comment) (int, error)
	Count(ctx context.Context, slug string) (int, error)
}
