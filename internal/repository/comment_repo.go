package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/portfolio-comments-api/internal/database"
	"github.com/portfolio-comments-api/internal/models"
)

// commentRepo is the PostgreSQL implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository backed by Postgres
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListBySlug retrieves all comments for a project, newest first
func (r *commentRepo) ListBySlug(ctx context.Context, slug string) ([]models.Comment, error) {
	query := `
		SELECT name, rating, body, posted_at_ms
		FROM comments
		WHERE project_slug = $1
		ORDER BY posted_at_ms DESC
	`
	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.Name, &c.Rating, &c.Text, &c.Time); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Insert writes one comment as a new record with an auto-generated id
func (r *commentRepo) Insert(ctx context.Context, slug string, comment models.Comment) error {
	query := `
		INSERT INTO comments (id, project_slug, name, rating, body, posted_at_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(), slug, comment.Name, comment.Rating, comment.Text, comment.Time,
	)
	return err
}

// BulkInsert writes a batch of comments in a single transaction using
// PostgreSQL COPY. Either the whole batch commits or none of it does.
func (r *commentRepo) BulkInsert(ctx context.Context, slug string, comments []models.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments",
		"id", "project_slug", "name", "rating", "body", "posted_at_ms",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, c := range comments {
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), slug, c.Name, c.Rating, c.Text, c.Time,
		); err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(comments), nil
}

// Count returns the number of comments for a project
func (r *commentRepo) Count(ctx context.Context, slug string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE project_slug = $1", slug,
	).Scan(&count)
	return count, err
}
