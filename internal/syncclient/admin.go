package syncclient

import (
	"strings"

	"github.com/portfolio-comments-api/internal/models"
)

// ParseAdminTrigger recognizes the covert deletion trigger: a submission
// with name "delete", no rating, and text of the form
// "<targetName>#<password>". The password must match the shared secret;
// a wrong or missing password is NOT a trigger, so the submission falls
// through to normal posting and the trigger stays stealthy. Returns the
// target name and whether admin mode should be entered.
func ParseAdminTrigger(name string, rating int, text, secret string) (string, bool) {
	if !strings.EqualFold(strings.TrimSpace(name), "delete") || rating != 0 {
		return "", false
	}

	target, pass, found := strings.Cut(text, "#")
	if !found {
		return "", false
	}
	target = strings.TrimSpace(target)
	if strings.TrimSpace(pass) != secret || secret == "" {
		return "", false
	}
	return target, true
}

// Search returns all comments whose name contains target,
// case-insensitive.
func (s *Session) Search(target string) []models.Comment {
	needle := strings.ToLower(target)

	var matches []models.Comment
	for _, c := range s.Comments() {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			matches = append(matches, c)
		}
	}
	return matches
}

// Delete removes every comment with the exact timestamp from the
// in-memory list and the local cache, returning how many were removed.
// Deletion is local-only: it never propagates to the remote store. Two
// comments created in the same millisecond are indistinguishable here
// and delete together.
func (s *Session) Delete(timeMs int64) int {
	s.mu.Lock()
	kept := s.comments[:0]
	removed := 0
	for _, c := range s.comments {
		if c.Time == timeMs {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.comments = kept
	snapshot := make([]models.Comment, len(s.comments))
	copy(snapshot, s.comments)
	s.mu.Unlock()

	if removed > 0 {
		s.cache.Save(s.slug, snapshot)
		s.log.Info().Int64("time", timeMs).Int("removed", removed).Msg("Deleted comment locally")
	}
	return removed
}
