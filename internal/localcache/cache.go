// Package localcache provides the SQLite-backed per-project comment
// cache used by the sync client. The cache is the read model the client
// renders from; failures to read or write it are logged and swallowed
// so the in-memory list stays canonical for the session.
package localcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/portfolio-comments-api/internal/models"
)

// Store is a SQLite database holding one serialized comment array per
// project slug.
type Store struct {
	conn *sql.DB
	log  zerolog.Logger
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS project_comments (
    slug TEXT PRIMARY KEY,
    comments TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Open creates or opens the cache database at the given path and
// initializes the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports a single writer; limit to one connection to
	// prevent "database is locked" errors.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if _, err := conn.Exec(createTableSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &Store{
		conn: conn,
		log:  log.With().Str("component", "localcache").Logger(),
	}, nil
}

// Load returns the cached comment list for a slug, newest first.
// ok is false when the slug was never written or the entry cannot be
// read; both are treated as a cache miss, never an error.
func (s *Store) Load(slug string) ([]models.Comment, bool) {
	var raw string
	err := s.conn.QueryRow(
		"SELECT comments FROM project_comments WHERE slug = ?", slug,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("Cache read failed")
		return nil, false
	}

	var comments []models.Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("Cache entry unreadable")
		return nil, false
	}
	return comments, true
}

// Save overwrites the full cached list for a slug. Never a partial
// update; failures are logged and ignored.
func (s *Store) Save(slug string, comments []models.Comment) {
	raw, err := json.Marshal(comments)
	if err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("Cache serialize failed")
		return
	}

	_, err = s.conn.Exec(`
		INSERT INTO project_comments (slug, comments, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET comments = excluded.comments, updated_at = excluded.updated_at
	`, slug, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("Cache write failed")
	}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.conn.Close()
}
