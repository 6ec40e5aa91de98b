package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/models"
	"github.com/portfolio-comments-api/internal/repository"
	"github.com/portfolio-comments-api/internal/validation"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo repository.CommentRepository
	mode string
	log  zerolog.Logger
	now  func() time.Time
}

func newCommentService(repo repository.CommentRepository, mode string, log zerolog.Logger) *commentService {
	return &commentService{
		repo: repo,
		mode: mode,
		log:  log.With().Str("service", "comment").Logger(),
		now:  time.Now,
	}
}

// List returns all comments for a project, normalized for display and
// ordered newest first.
func (s *commentService) List(ctx context.Context, slug string) ([]models.Comment, error) {
	stored, err := s.repo.ListBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(stored))
	for _, c := range stored {
		comments = append(comments, c.NormalizeForDisplay(s.now))
	}
	models.SortByTimeDesc(comments)
	return comments, nil
}

// Post normalizes and stores a single comment, returning the record as
// written. A missing time is assigned at creation and never mutated
// afterwards.
func (s *commentService) Post(ctx context.Context, slug string, raw validation.RawComment) (models.Comment, error) {
	comment, findings := validation.ParseComment(raw, s.now)
	for _, f := range findings {
		s.log.Debug().
			Str("slug", slug).
			Str("field", f.Field).
			Str("repair", f.Message).
			Msg("Coerced comment field")
	}

	if err := s.repo.Insert(ctx, slug, comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// Migrate bulk-inserts a client's locally-accumulated comments. The
// repository path is atomic-as-possible: one transaction on Postgres,
// a single locked pass on the memory store.
func (s *commentService) Migrate(ctx context.Context, slug string, raws []validation.RawComment) (int, error) {
	comments, findings := validation.ParseComments(raws, s.now)
	if len(findings) > 0 {
		s.log.Debug().
			Str("slug", slug).
			Int("records_repaired", len(findings)).
			Msg("Coerced fields during migration")
	}

	count, err := s.repo.BulkInsert(ctx, slug, comments)
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Str("slug", slug).
		Int("count", count).
		Msg("Migrated comments into store")
	return count, nil
}

// Mode reports which backing store is active
func (s *commentService) Mode() string {
	return s.mode
}

// StoreReady reports whether the durable store is in use
func (s *commentService) StoreReady() bool {
	return s.mode == ModePostgres
}
