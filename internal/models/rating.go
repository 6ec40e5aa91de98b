package models

import "fmt"

// RatingSummary aggregates the star ratings of a comment list
type RatingSummary struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// ComputeRating averages all comments with rating > 0. Unrated comments
// (rating == 0) appear in the list but contribute to neither the average
// nor the count.
func ComputeRating(comments []Comment) RatingSummary {
	var sum, count int
	for _, c := range comments {
		if c.Rating > 0 {
			sum += c.Rating
			count++
		}
	}
	if count == 0 {
		return RatingSummary{}
	}
	return RatingSummary{Avg: float64(sum) / float64(count), Count: count}
}

// FormatReviews renders a review count for display: "No reviews",
// "1 review", "87 reviews", "1.2K reviews", "3M reviews".
func FormatReviews(n int) string {
	switch {
	case n <= 0:
		return "No reviews"
	case n == 1:
		return "1 review"
	case n < 1000:
		return fmt.Sprintf("%d reviews", n)
	case n < 1000000:
		return compactCount(float64(n)/1000, "K") + " reviews"
	default:
		return compactCount(float64(n)/1000000, "M") + " reviews"
	}
}

func compactCount(v float64, unit string) string {
	if v >= 10 {
		return fmt.Sprintf("%.0f%s", v, unit)
	}
	s := fmt.Sprintf("%.1f", v)
	s = trimDotZero(s)
	return s + unit
}

func trimDotZero(s string) string {
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
