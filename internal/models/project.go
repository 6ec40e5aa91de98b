package models

import (
	"regexp"
	"strings"
)

// Project holds the static metadata for one portfolio project
type Project struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Image       string   `json:"image" yaml:"image"`
	Repo        string   `json:"repo" yaml:"repo"`
	Raw         string   `json:"raw" yaml:"raw"`
	Tags        []string `json:"tags" yaml:"tags"`
	Screenshots []string `json:"screenshots" yaml:"screenshots"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe lowercase hyphenated identifier used as
// the primary key for comment collections. An empty title slugs to
// "project".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "project"
	}
	return s
}
