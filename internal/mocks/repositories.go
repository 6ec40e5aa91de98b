package mocks

import (
	"context"

	"github.com/portfolio-comments-api/internal/models"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments        map[string][]models.Comment // slug -> newest first
	InsertError     error
	ListError       error
	BulkInsertFunc  func(ctx context.Context, slug string, comments []models.Comment) (int, error)
	InsertCalls     int
	BulkInsertCalls int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string][]models.Comment),
	}
}

func (m *MockCommentRepository) ListBySlug(ctx context.Context, slug string) ([]models.Comment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.Comment, len(m.Comments[slug]))
	copy(out, m.Comments[slug])
	return out, nil
}

func (m *MockCommentRepository) Insert(ctx context.Context, slug string, comment models.Comment) error {
	m.InsertCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Comments[slug] = append([]models.Comment{comment}, m.Comments[slug]...)
	return nil
}

func (m *MockCommentRepository) BulkInsert(ctx context.Context, slug string, comments []models.Comment) (int, error) {
	m.BulkInsertCalls++
	if m.BulkInsertFunc != nil {
		return m.BulkInsertFunc(ctx, slug, comments)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	if len(comments) == 0 {
		return 0, nil
	}
	for _, c := range comments {
		m.Comments[slug] = append([]models.Comment{c}, m.Comments[slug]...)
	}
	return len(comments), nil
}

func (m *MockCommentRepository) Count(ctx context.Context, slug string) (int, error) {
	return len(m.Comments[slug]), nil
}
