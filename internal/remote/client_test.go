package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/models"
)

func testClient(baseURL string) *Client {
	return New(baseURL, 2*time.Second, zerolog.Nop())
}

func TestFetchComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/poly-forest/comments" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Comment{
			{Name: "Jon", Rating: 4, Text: "new", Time: 200},
			{Name: "Ava", Rating: 5, Text: "old", Time: 100},
		})
	}))
	defer server.Close()

	got := testClient(server.URL).FetchComments(context.Background(), "poly-forest")
	if len(got) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(got))
	}
	if got[0].Name != "Jon" {
		t.Errorf("Expected Jon first, got %q", got[0].Name)
	}
}

func TestFetchCommentsNullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	got := testClient(server.URL).FetchComments(context.Background(), "p")
	if got == nil {
		t.Error("Expected empty list for null body, got nil")
	}
	if len(got) != 0 {
		t.Errorf("Expected 0 comments, got %d", len(got))
	}
}

func TestFetchCommentsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if got := testClient(server.URL).FetchComments(context.Background(), "p"); got != nil {
		t.Errorf("Expected nil on server error, got %v", got)
	}
}

func TestFetchCommentsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	if got := testClient(server.URL).FetchComments(context.Background(), "p"); got != nil {
		t.Errorf("Expected nil when unreachable, got %v", got)
	}
}

func TestPostComment(t *testing.T) {
	var received models.Comment
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	ok := testClient(server.URL).PostComment(context.Background(), "p", models.Comment{
		Name: "Ava", Rating: 5, Text: "Great!", Time: 123,
	})
	if !ok {
		t.Error("Expected post to succeed")
	}
	if received.Name != "Ava" || received.Time != 123 {
		t.Errorf("Expected comment delivered, got %+v", received)
	}
}

func TestPostCommentRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	if testClient(server.URL).PostComment(context.Background(), "p", models.Comment{}) {
		t.Error("Expected post to fail on rejection")
	}
}

func TestBulkPostEmptySkipsNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	res := testClient(server.URL).BulkPost(context.Background(), "p", nil)
	if res.Attempted != 0 || res.Succeeded != 0 {
		t.Errorf("Expected {0 0}, got %+v", res)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("Expected no requests for empty batch, got %d", hits)
	}
}

func TestBulkPostCountsPartialFailure(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fail every second write
		if atomic.AddInt32(&hits, 1)%2 == 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	res := testClient(server.URL).BulkPost(context.Background(), "p", []models.Comment{
		{Time: 1}, {Time: 2}, {Time: 3}, {Time: 4},
	})
	if res.Attempted != 4 {
		t.Errorf("Expected 4 attempted, got %d", res.Attempted)
	}
	if res.Succeeded != 2 {
		t.Errorf("Expected 2 succeeded, got %d", res.Succeeded)
	}
}

func TestMigrate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p/migrate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var body struct {
			Comments []models.Comment `json:"comments"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "count": len(body.Comments)})
	}))
	defer server.Close()

	count, ok := testClient(server.URL).Migrate(context.Background(), "p", []models.Comment{
		{Time: 1}, {Time: 2},
	})
	if !ok {
		t.Error("Expected migrate to succeed")
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestMigrateEmpty(t *testing.T) {
	count, ok := testClient("http://127.0.0.1:0").Migrate(context.Background(), "p", nil)
	if ok || count != 0 {
		t.Errorf("Expected (0, false) for empty batch, got (%d, %v)", count, ok)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "store": true, "mode": "postgres"})
	}))
	defer server.Close()

	status, ok := testClient(server.URL).Health(context.Background())
	if !ok {
		t.Fatal("Expected health check to succeed")
	}
	if !status.OK || !status.Store || status.Mode != "postgres" {
		t.Errorf("Expected healthy postgres status, got %+v", status)
	}
}

func TestHealthUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	if _, ok := testClient(server.URL).Health(context.Background()); ok {
		t.Error("Expected health check to fail when unreachable")
	}
}

func TestSlugEscapedInURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	testClient(server.URL).FetchComments(context.Background(), "a/b")
	if path != "/api/projects/a%2Fb/comments" {
		t.Errorf("Expected escaped slug in path, got %q", path)
	}
}
