// Package schedule computes spaced-repetition review dates for solved items.
// All functions are pure: no clock, no I/O, equal inputs give equal outputs.
package schedule

import (
	"math"
	"time"
)

// baseIntervals is the interval ladder in days, indexed by attempts-1.
// Attempts beyond the ladder clamp to the longest interval.
var baseIntervals = []int{1, 3, 7, 14, 30, 60, 120}

const (
	MinDifficultyRating = 1
	MaxDifficultyRating = 5
)

// IsValidDifficultyRating reports whether rating is a valid 1-5
// self-assessment. Callers must validate before calling NextReviewDate
// or Interval; those functions do not re-check.
func IsValidDifficultyRating(rating int) bool {
	return rating >= MinDifficultyRating && rating <= MaxDifficultyRating
}

// Interval returns the number of days until the next review for a given
// attempt count and difficulty rating. The base interval from the ladder is
// scaled by a rating modifier: 1.5x for rating 1 (easiest, longer gaps) down
// to 0.5x for rating 5 (hardest, shorter gaps), and the result is rounded
// and floored to one day.
func Interval(attempts, rating int) int {
	idx := attempts - 1
	if idx >= len(baseIntervals) {
		idx = len(baseIntervals) - 1
	}

	modifier := 1.5 - float64(rating-1)*0.25

	days := int(math.Round(float64(baseIntervals[idx]) * modifier))
	if days < 1 {
		days = 1
	}

	return days
}

// NextReviewDate returns lastReview plus the computed interval.
// Preconditions: attempts >= 1 and IsValidDifficultyRating(rating).
func NextReviewDate(attempts int, lastReview time.Time, rating int) time.Time {
	return lastReview.AddDate(0, 0, Interval(attempts, rating))
}
