// Package remote provides the HTTP client for the comment API. Every
// operation converts failure into a nil/false/zero result plus a log
// line; no error crosses this boundary into the sync client.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/models"
)

// Client talks to the comment API service
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// BulkResult reports the outcome of a client-side bulk push. Successes
// are counted independently so partial failure is visible.
type BulkResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
}

// HealthStatus is the payload of the health endpoint
type HealthStatus struct {
	OK    bool   `json:"ok"`
	Store bool   `json:"store"`
	Mode  string `json:"mode"`
}

// New creates a client for the comment API at baseURL
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "remote").Logger(),
	}
}

// FetchComments loads all comments for a project, newest first.
// Returns nil on any failure. nil is NOT the same as an empty list:
// callers must treat it as "no update available", not "clear the cache".
func (c *Client) FetchComments(ctx context.Context, slug string) []models.Comment {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.commentsURL(slug), nil)
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Fetch request build failed")
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("slug", slug).Msg("Fetch rejected")
		return nil
	}

	var comments []models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Fetch response unreadable")
		return nil
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments
}

// PostComment writes one comment as a new record. Returns false on any
// failure without raising to the caller.
func (c *Client) PostComment(ctx context.Context, slug string, comment models.Comment) bool {
	body, err := json.Marshal(comment)
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Post serialize failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.commentsURL(slug), bytes.NewReader(body))
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Post request build failed")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Post failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		c.log.Warn().Int("status", resp.StatusCode).Str("slug", slug).Msg("Post rejected")
		return false
	}
	return true
}

// BulkPost submits comments one at a time, counting successes
// independently. A zero-length input returns {0,0} without contacting
// the store.
func (c *Client) BulkPost(ctx context.Context, slug string, comments []models.Comment) BulkResult {
	if len(comments) == 0 {
		return BulkResult{}
	}

	res := BulkResult{Attempted: len(comments)}
	for _, comment := range comments {
		if c.PostComment(ctx, slug, comment) {
			res.Succeeded++
		}
	}
	return res
}

// Migrate pushes a batch through the server-side bulk endpoint, which
// commits in a single transaction when the durable store is active.
// Returns the server-reported count and whether the call succeeded.
func (c *Client) Migrate(ctx context.Context, slug string, comments []models.Comment) (int, bool) {
	if len(comments) == 0 {
		return 0, false
	}

	body, err := json.Marshal(map[string]interface{}{"comments": comments})
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Migrate serialize failed")
		return 0, false
	}

	u := fmt.Sprintf("%s/api/projects/%s/migrate", c.baseURL, url.PathEscape(slug))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Migrate request build failed")
		return 0, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Migrate failed")
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		c.log.Warn().Int("status", resp.StatusCode).Str("slug", slug).Msg("Migrate rejected")
		return 0, false
	}

	var out struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn().Err(err).Str("slug", slug).Msg("Migrate response unreadable")
		return 0, false
	}
	return out.Count, out.OK
}

// Health queries the health endpoint. ok is false when the service is
// unreachable.
func (c *Client) Health(ctx context.Context) (HealthStatus, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return HealthStatus{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("Health check failed")
		return HealthStatus{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{}, false
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return HealthStatus{}, false
	}
	return status, true
}

func (c *Client) commentsURL(slug string) string {
	return fmt.Sprintf("%s/api/projects/%s/comments", c.baseURL, url.PathEscape(slug))
}
