package syncclient

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/portfolio-comments-api/internal/models"
)

func TestParseAdminTrigger(t *testing.T) {
	const secret = "dev-secret"

	tests := []struct {
		name       string
		commName   string
		rating     int
		text       string
		secret     string
		wantTarget string
		wantOK     bool
	}{
		{
			name:       "valid trigger",
			commName:   "delete",
			rating:     0,
			text:       "spam guy#dev-secret",
			secret:     secret,
			wantTarget: "spam guy",
			wantOK:     true,
		},
		{
			name:       "case-insensitive name",
			commName:   "Delete",
			rating:     0,
			text:       "x#dev-secret",
			secret:     secret,
			wantTarget: "x",
			wantOK:     true,
		},
		{
			name:     "wrong password falls through",
			commName: "delete",
			rating:   0,
			text:     "x#guess",
			secret:   secret,
			wantOK:   false,
		},
		{
			name:     "missing separator falls through",
			commName: "delete",
			rating:   0,
			text:     "just text",
			secret:   secret,
			wantOK:   false,
		},
		{
			name:     "nonzero rating falls through",
			commName: "delete",
			rating:   3,
			text:     "x#dev-secret",
			secret:   secret,
			wantOK:   false,
		},
		{
			name:     "other name falls through",
			commName: "deleted",
			rating:   0,
			text:     "x#dev-secret",
			secret:   secret,
			wantOK:   false,
		},
		{
			name:     "empty secret never triggers",
			commName: "delete",
			rating:   0,
			text:     "x#",
			secret:   "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, ok := ParseAdminTrigger(tt.commName, tt.rating, tt.text, tt.secret)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok %v, got %v", tt.wantOK, ok)
			}
			if ok && target != tt.wantTarget {
				t.Errorf("Expected target %q, got %q", tt.wantTarget, target)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	cache := newFakeCache()
	cache.entries["poly-forest"] = []models.Comment{
		{Name: "Spam Guy", Rating: 1, Time: 3},
		{Name: "Ava", Rating: 5, Time: 2},
		{Name: "another spammer", Rating: 1, Time: 1},
	}
	sess := NewSession("poly-forest", &fakeRemote{}, cache, zerolog.Nop())
	sess.Hydrate()

	matches := sess.Search("spam")
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	if got := sess.Search("nobody"); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
}

func TestDeleteIsLocalOnly(t *testing.T) {
	rem := &fakeRemote{postOK: true}
	cache := newFakeCache()
	cache.entries["poly-forest"] = []models.Comment{
		{Name: "Spam Guy", Rating: 1, Text: "junk", Time: 500},
		{Name: "Ava", Rating: 5, Text: "keep", Time: 400},
	}
	sess := NewSession("poly-forest", rem, cache, zerolog.Nop())
	sess.Hydrate()

	removed := sess.Delete(500)
	if removed != 1 {
		t.Fatalf("Expected 1 removed, got %d", removed)
	}

	got := sess.Comments()
	if len(got) != 1 || got[0].Name != "Ava" {
		t.Errorf("Expected only Ava left, got %+v", got)
	}
	if sess.Rating().Count != 1 {
		t.Errorf("Expected rating count 1 after delete, got %d", sess.Rating().Count)
	}
	if cached := cache.entries["poly-forest"]; len(cached) != 1 {
		t.Errorf("Expected cache updated, got %d comments", len(cached))
	}
	if rem.postCount() != 0 || rem.bulkCalls != 0 {
		t.Error("Expected no remote traffic for a delete")
	}

	// A later fetch can resurrect the comment; that is the contract
	rem.fetchResult = []models.Comment{
		{Name: "Spam Guy", Rating: 1, Text: "junk", Time: 500},
		{Name: "Ava", Rating: 5, Text: "keep", Time: 400},
	}
	sess.Reconcile(context.Background())
	if got := sess.Comments(); len(got) != 2 {
		t.Errorf("Expected remote copy restored on reconcile, got %d", len(got))
	}
}

func TestDeleteRemovesAllExactMatches(t *testing.T) {
	cache := newFakeCache()
	cache.entries["poly-forest"] = []models.Comment{
		{Name: "a", Time: 500},
		{Name: "b", Time: 500},
		{Name: "c", Time: 400},
	}
	sess := NewSession("poly-forest", &fakeRemote{}, cache, zerolog.Nop())
	sess.Hydrate()

	if removed := sess.Delete(500); removed != 2 {
		t.Errorf("Expected 2 removed for shared timestamp, got %d", removed)
	}
	if got := sess.Comments(); len(got) != 1 {
		t.Errorf("Expected 1 comment left, got %d", len(got))
	}
}

func TestDeleteNoMatch(t *testing.T) {
	cache := newFakeCache()
	cache.entries["poly-forest"] = []models.Comment{{Name: "a", Time: 100}}
	sess := NewSession("poly-forest", &fakeRemote{}, cache, zerolog.Nop())
	sess.Hydrate()
	saves := cache.saveCalls

	if removed := sess.Delete(999); removed != 0 {
		t.Errorf("Expected 0 removed, got %d", removed)
	}
	if cache.saveCalls != saves {
		t.Error("Expected no cache write when nothing removed")
	}
}
