package mocks

import (
	"context"
	"time"

	"github.com/portfolio-comments-api/internal/models"
	"github.com/portfolio-comments-api/internal/service"
	"github.com/portfolio-comments-api/internal/validation"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	Comments     map[string][]models.Comment
	ListError    error
	PostError    error
	MigrateError error
	StoreMode    string
	MigrateCalls int
}

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{
		Comments:  make(map[string][]models.Comment),
		StoreMode: service.ModeMemory,
	}
}

func (m *MockCommentService) List(ctx context.Context, slug string) ([]models.Comment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]models.Comment, len(m.Comments[slug]))
	copy(out, m.Comments[slug])
	return out, nil
}

func (m *MockCommentService) Post(ctx context.Context, slug string, raw validation.RawComment) (models.Comment, error) {
	if m.PostError != nil {
		return models.Comment{}, m.PostError
	}
	comment, _ := validation.ParseComment(raw, time.Now)
	m.Comments[slug] = append([]models.Comment{comment}, m.Comments[slug]...)
	return comment, nil
}

func (m *MockCommentService) Migrate(ctx context.Context, slug string, raws []validation.RawComment) (int, error) {
	m.MigrateCalls++
	if m.MigrateError != nil {
		return 0, m.MigrateError
	}
	comments, _ := validation.ParseComments(raws, time.Now)
	for _, c := range comments {
		m.Comments[slug] = append([]models.Comment{c}, m.Comments[slug]...)
	}
	return len(comments), nil
}

func (m *MockCommentService) Mode() string {
	return m.StoreMode
}

func (m *MockCommentService) StoreReady() bool {
	return m.StoreMode == service.ModePostgres
}
