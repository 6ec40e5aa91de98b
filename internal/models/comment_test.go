package models

import (
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

func TestNormalizeBounds(t *testing.T) {
	tests := []struct {
		name       string
		in         Comment
		wantName   string
		wantRating int
		wantText   string
	}{
		{
			name:       "in-bounds comment unchanged",
			in:         Comment{Name: "Ava", Rating: 5, Text: "Great!", Time: 123},
			wantName:   "Ava",
			wantRating: 5,
			wantText:   "Great!",
		},
		{
			name:       "name truncated to 60",
			in:         Comment{Name: strings.Repeat("a", 200), Rating: 3, Text: "ok", Time: 123},
			wantName:   strings.Repeat("a", 60),
			wantRating: 3,
			wantText:   "ok",
		},
		{
			name:       "text truncated to 1000",
			in:         Comment{Name: "Jon", Rating: 4, Text: strings.Repeat("x", 1500), Time: 123},
			wantName:   "Jon",
			wantRating: 4,
			wantText:   strings.Repeat("x", 1000),
		},
		{
			name:       "rating above 5 coerces to 0",
			in:         Comment{Name: "Jon", Rating: 9, Text: "hi", Time: 123},
			wantName:   "Jon",
			wantRating: 0,
			wantText:   "hi",
		},
		{
			name:       "negative rating coerces to 0",
			in:         Comment{Name: "Jon", Rating: -2, Text: "hi", Time: 123},
			wantName:   "Jon",
			wantRating: 0,
			wantText:   "hi",
		},
		{
			name:       "control characters stripped",
			in:         Comment{Name: "A\x00v\x1fa", Rating: 1, Text: "line\x07noise\x7f", Time: 123},
			wantName:   "Ava",
			wantRating: 1,
			wantText:   "linenoise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(fixedNow)
			if got.Name != tt.wantName {
				t.Errorf("Expected name %q, got %q", tt.wantName, got.Name)
			}
			if got.Rating != tt.wantRating {
				t.Errorf("Expected rating %d, got %d", tt.wantRating, got.Rating)
			}
			if got.Text != tt.wantText {
				t.Errorf("Expected text %q, got %q", tt.wantText, got.Text)
			}
		})
	}
}

func TestNormalizeAssignsTime(t *testing.T) {
	got := Comment{Name: "Ava", Text: "hi"}.Normalize(fixedNow)
	if got.Time != fixedNow().UnixMilli() {
		t.Errorf("Expected assigned time %d, got %d", fixedNow().UnixMilli(), got.Time)
	}

	// An existing time is never mutated
	got = Comment{Name: "Ava", Text: "hi", Time: 42}.Normalize(fixedNow)
	if got.Time != 42 {
		t.Errorf("Expected time 42 preserved, got %d", got.Time)
	}
}

func TestNormalizeForDisplayAnonymous(t *testing.T) {
	got := Comment{Text: "hi", Time: 1}.NormalizeForDisplay(fixedNow)
	if got.Name != "Anonymous" {
		t.Errorf("Expected empty name to display as Anonymous, got %q", got.Name)
	}
}

func TestSortByTimeDesc(t *testing.T) {
	comments := []Comment{
		{Name: "a", Time: 10},
		{Name: "b", Time: 30},
		{Name: "c", Time: 20},
	}
	SortByTimeDesc(comments)

	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if comments[i].Name != want {
			t.Errorf("Expected %q at position %d, got %q", want, i, comments[i].Name)
		}
	}
}
