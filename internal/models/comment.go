package models

import (
	"sort"
	"strings"
	"time"
)

// Comment represents one user-submitted review attached to a project
type Comment struct {
	Name   string `json:"name" db:"name"`
	Rating int    `json:"rating" db:"rating"`
	Text   string `json:"text" db:"body"`
	Time   int64  `json:"time" db:"posted_at_ms"`
}

// StoredComment is a comment row in the durable store, carrying the
// auto-generated record id and owning project slug
type StoredComment struct {
	ID   string `json:"id" db:"id"`
	Slug string `json:"slug" db:"project_slug"`
	Comment
}

const (
	// MaxNameLength is the maximum stored length of a commenter name
	MaxNameLength = 60
	// MaxTextLength is the maximum stored length of a comment body
	MaxTextLength = 1000
	// MaxRating is the highest star rating; 0 means "no rating given"
	MaxRating = 5
)

// Normalize returns a copy of c with every field forced into bounds:
// name and text are stripped of control characters and truncated, the
// rating coerces to 0 when outside [0,5], and a missing or non-positive
// time is replaced with now. Malformed input never blocks a write.
func (c Comment) Normalize(now func() time.Time) Comment {
	out := Comment{
		Name:   Truncate(SanitizeText(c.Name), MaxNameLength),
		Rating: c.Rating,
		Text:   Truncate(SanitizeText(c.Text), MaxTextLength),
		Time:   c.Time,
	}
	if out.Rating < 0 || out.Rating > MaxRating {
		out.Rating = 0
	}
	if out.Time <= 0 {
		out.Time = now().UnixMilli()
	}
	return out
}

// NormalizeForDisplay applies Normalize and additionally substitutes
// "Anonymous" for an empty name, matching read-path presentation.
func (c Comment) NormalizeForDisplay(now func() time.Time) Comment {
	out := c.Normalize(now)
	if out.Name == "" {
		out.Name = "Anonymous"
	}
	return out
}

// SanitizeText removes ASCII control characters and trims whitespace
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SortByTimeDesc orders comments newest first, in place
func SortByTimeDesc(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Time > comments[j].Time
	})
}
