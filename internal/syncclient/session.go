// Package syncclient merges the local cache and remote views of a
// project's comments. Each project page owns one Session; there is no
// ambient shared state between projects.
package syncclient

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/models"
	"github.com/portfolio-comments-api/internal/remote"
	"github.com/portfolio-comments-api/internal/validation"
)

// Remote is the comment API surface the session needs. Implemented by
// remote.Client; mocked in tests.
type Remote interface {
	FetchComments(ctx context.Context, slug string) []models.Comment
	PostComment(ctx context.Context, slug string, comment models.Comment) bool
	BulkPost(ctx context.Context, slug string, comments []models.Comment) remote.BulkResult
}

// Cache is the durable local comment store. Implemented by
// localcache.Store.
type Cache interface {
	Load(slug string) ([]models.Comment, bool)
	Save(slug string, comments []models.Comment)
}

// Session holds the in-memory comment list for one project and keeps it
// in step with the local cache and the remote store.
type Session struct {
	slug   string
	remote Remote
	cache  Cache
	log    zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	comments []models.Comment

	// pending tracks fire-and-forget remote posts so Flush can wait for
	// them (tests, CLI exit).
	pending sync.WaitGroup
}

// NewSession creates a session for one project slug
func NewSession(slug string, rem Remote, cache Cache, log zerolog.Logger) *Session {
	return &Session{
		slug:   slug,
		remote: rem,
		cache:  cache,
		log:    log.With().Str("component", "session").Str("slug", slug).Logger(),
		now:    time.Now,
	}
}

// Hydrate loads the cached comment list into memory so the view is
// usable immediately, possibly stale. A cache miss hydrates to an empty
// list.
func (s *Session) Hydrate() {
	cached, ok := s.cache.Load(s.slug)
	if !ok {
		cached = []models.Comment{}
	}

	normalized := make([]models.Comment, 0, len(cached))
	for _, c := range cached {
		normalized = append(normalized, c.NormalizeForDisplay(s.now))
	}
	models.SortByTimeDesc(normalized)

	s.mu.Lock()
	s.comments = normalized
	s.mu.Unlock()
}

// Reconcile fetches the remote list. A non-nil, non-empty result
// replaces both the in-memory and cached copies; nil (store unreachable)
// or empty leaves the hydrated view unchanged. Returns whether a
// replacement happened.
func (s *Session) Reconcile(ctx context.Context) bool {
	fetched := s.remote.FetchComments(ctx, s.slug)
	if len(fetched) == 0 {
		// nil means unreachable, empty means nothing to show over the
		// hydrated view; neither clears local state.
		return false
	}

	normalized := make([]models.Comment, 0, len(fetched))
	for _, c := range fetched {
		normalized = append(normalized, c.NormalizeForDisplay(s.now))
	}
	// The remote list should already be newest first; re-sort in case
	// it is not.
	models.SortByTimeDesc(normalized)

	s.mu.Lock()
	s.comments = normalized
	s.mu.Unlock()

	s.cache.Save(s.slug, normalized)
	return true
}

// Post constructs a normalized comment with time = now, prepends it to
// the in-memory list, persists the cache, and dispatches the remote
// write without waiting for it. Failures of the remote write are
// swallowed by contract: the comment stays visible locally either way.
func (s *Session) Post(ctx context.Context, raw validation.RawComment) models.Comment {
	raw.Time = nil // time is assigned at creation, never taken from input
	comment, findings := validation.ParseComment(raw, s.now)
	for _, f := range findings {
		s.log.Debug().Str("field", f.Field).Str("repair", f.Message).Msg("Coerced comment field")
	}

	s.mu.Lock()
	s.comments = append([]models.Comment{comment}, s.comments...)
	snapshot := make([]models.Comment, len(s.comments))
	copy(snapshot, s.comments)
	s.mu.Unlock()

	s.cache.Save(s.slug, snapshot)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if !s.remote.PostComment(ctx, s.slug, comment) {
			s.log.Warn().Int64("time", comment.Time).Msg("Remote post failed, comment kept locally")
		}
	}()

	return comment
}

// Flush waits for all dispatched remote posts to finish
func (s *Session) Flush() {
	s.pending.Wait()
}

// Migrate reads the full cached list and pushes it to the remote store
// one comment at a time, reporting attempted vs succeeded. It does not
// deduplicate against what the remote already holds, so repeated runs
// can create duplicate remote records.
func (s *Session) Migrate(ctx context.Context) remote.BulkResult {
	cached, ok := s.cache.Load(s.slug)
	if !ok || len(cached) == 0 {
		return remote.BulkResult{}
	}

	normalized := make([]models.Comment, 0, len(cached))
	for _, c := range cached {
		normalized = append(normalized, c.Normalize(s.now))
	}

	res := s.remote.BulkPost(ctx, s.slug, normalized)
	if res.Succeeded < res.Attempted {
		s.log.Warn().
			Int("attempted", res.Attempted).
			Int("succeeded", res.Succeeded).
			Msg("Migration partially failed")
	}
	return res
}

// Comments returns a snapshot of the current in-memory list
func (s *Session) Comments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Rating aggregates the current list: average and count over comments
// with rating > 0.
func (s *Session) Rating() models.RatingSummary {
	return models.ComputeRating(s.Comments())
}
