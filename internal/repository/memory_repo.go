package repository

import (
	"context"
	"sync"

	"github.com/portfolio-comments-api/internal/models"
)

// memoryRepo is the in-process fallback store used when the database
// cannot be initialized. It is explicitly non-durable: contents are
// lost on restart. Exists so local development works without database
// credentials.
type memoryRepo struct {
	mu       sync.RWMutex
	comments map[string][]models.Comment // slug -> newest first
}

// NewMemoryRepo creates an empty in-memory comment repository
func NewMemoryRepo() CommentRepository {
	return &memoryRepo{comments: make(map[string][]models.Comment)}
}

func (r *memoryRepo) ListBySlug(ctx context.Context, slug string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.comments[slug]
	out := make([]models.Comment, len(stored))
	copy(out, stored)
	models.SortByTimeDesc(out)
	return out, nil
}

func (r *memoryRepo) Insert(ctx context.Context, slug string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Prepend to keep newest first
	r.comments[slug] = append([]models.Comment{comment}, r.comments[slug]...)
	return nil
}

func (r *memoryRepo) BulkInsert(ctx context.Context, slug string, comments []models.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range comments {
		r.comments[slug] = append([]models.Comment{c}, r.comments[slug]...)
	}
	return len(comments), nil
}

func (r *memoryRepo) Count(ctx context.Context, slug string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comments[slug]), nil
}
