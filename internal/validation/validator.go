package validation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/portfolio-comments-api/internal/models"
)

// ValidationError represents a single validation finding
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// RawComment is the loosely-typed wire shape accepted at every entry
// point (form submit, remote fetch result, bulk migration input).
// Rating and Time are interface{} so numeric strings, floats, and nulls
// all coerce instead of failing the JSON bind.
type RawComment struct {
	Name   string      `json:"name"`
	Rating interface{} `json:"rating"`
	Text   string      `json:"text"`
	Time   interface{} `json:"time"`
}

// ParseComment is the strict parse boundary: it always yields a valid,
// normalized Comment (out-of-bounds input is truncated or coerced, never
// rejected) and reports each coercion as a typed ValidationError so
// callers can log what was repaired.
func ParseComment(raw RawComment, now func() time.Time) (models.Comment, []ValidationError) {
	var errs []ValidationError

	rating, ok := coerceInt(raw.Rating)
	if !ok && raw.Rating != nil {
		errs = append(errs, ValidationError{Field: "rating", Message: "not a number, coerced to 0", Value: raw.Rating})
	}
	if rating < 0 || rating > models.MaxRating {
		errs = append(errs, ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("outside [0,%d], coerced to 0", models.MaxRating),
			Value:   rating,
		})
		rating = 0
	}

	ts, ok := coerceInt64(raw.Time)
	if !ok && raw.Time != nil {
		errs = append(errs, ValidationError{Field: "time", Message: "not a timestamp, assigned now", Value: raw.Time})
	}

	name := models.SanitizeText(raw.Name)
	if len([]rune(name)) > models.MaxNameLength {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("longer than %d characters, truncated", models.MaxNameLength),
		})
	}

	text := models.SanitizeText(raw.Text)
	if len([]rune(text)) > models.MaxTextLength {
		errs = append(errs, ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("longer than %d characters, truncated", models.MaxTextLength),
		})
	}

	c := models.Comment{
		Name:   models.Truncate(name, models.MaxNameLength),
		Rating: rating,
		Text:   models.Truncate(text, models.MaxTextLength),
		Time:   ts,
	}
	if c.Time <= 0 {
		c.Time = now().UnixMilli()
	}
	return c, errs
}

// ParseComments applies ParseComment to a batch, keeping per-record
// validation findings indexed by position.
func ParseComments(raws []RawComment, now func() time.Time) ([]models.Comment, map[int][]ValidationError) {
	comments := make([]models.Comment, 0, len(raws))
	findings := make(map[int][]ValidationError)
	for i, raw := range raws {
		c, errs := ParseComment(raw, now)
		if len(errs) > 0 {
			findings[i] = errs
		}
		comments = append(comments, c)
	}
	return comments, findings
}

// coerceInt converts the loose wire value to an int. nil and
// unconvertible values yield (0, false).
func coerceInt(v interface{}) (int, bool) {
	n, ok := coerceInt64(v)
	return int(n), ok
}

func coerceInt64(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return int64(t), true
	case float32:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case string:
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
