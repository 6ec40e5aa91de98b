// Package projects loads the static per-project metadata (image, repo
// link, tags, screenshots) that the portfolio pages display alongside
// comments.
package projects

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/portfolio-comments-api/internal/models"
)

// Catalog is a read-only slug-keyed view of the configured projects
type Catalog struct {
	projects map[string]models.Project
}

type catalogFile struct {
	Projects []models.Project `yaml:"projects"`
}

// Load reads the catalog from a YAML file. A missing or unreadable file
// is non-fatal: the service runs with an empty catalog and logs why.
func Load(path string, log zerolog.Logger) *Catalog {
	c := &Catalog{projects: make(map[string]models.Project)}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Project catalog unavailable, serving empty catalog")
		return c
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Project catalog unreadable, serving empty catalog")
		return c
	}

	for _, p := range file.Projects {
		if p.Slug == "" {
			p.Slug = models.Slugify(p.Title)
		}
		c.projects[p.Slug] = p
	}

	log.Info().Int("projects", len(c.projects)).Str("path", path).Msg("Project catalog loaded")
	return c
}

// New builds a catalog directly from entries (used in tests and by
// embedders that configure projects in code).
func New(entries []models.Project) *Catalog {
	c := &Catalog{projects: make(map[string]models.Project, len(entries))}
	for _, p := range entries {
		if p.Slug == "" {
			p.Slug = models.Slugify(p.Title)
		}
		c.projects[p.Slug] = p
	}
	return c
}

// Get returns the project for a slug
func (c *Catalog) Get(slug string) (models.Project, bool) {
	p, ok := c.projects[slug]
	return p, ok
}

// Len returns the number of configured projects
func (c *Catalog) Len() int {
	return len(c.projects)
}
