package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Ladder(t *testing.T) {
	testCases := []struct {
		name     string
		attempts int
		rating   int
		expected int
	}{
		{name: "first attempt neutral rating", attempts: 1, rating: 3, expected: 1},
		{name: "second attempt neutral rating", attempts: 2, rating: 3, expected: 3},
		{name: "third attempt neutral rating", attempts: 3, rating: 3, expected: 7},
		{name: "seventh attempt neutral rating", attempts: 7, rating: 3, expected: 120},
		{name: "attempts beyond ladder clamp", attempts: 50, rating: 3, expected: 120},
		{name: "easiest rating stretches interval", attempts: 3, rating: 1, expected: 11},   // round(7 * 1.5)
		{name: "hardest rating shrinks interval", attempts: 3, rating: 5, expected: 4},      // round(7 * 0.5)
		{name: "hardest rating floors at one day", attempts: 1, rating: 5, expected: 1},     // round(1 * 0.5) -> 1
		{name: "clamped interval still scaled", attempts: 100, rating: 5, expected: 60},     // round(120 * 0.5)
		{name: "rating two", attempts: 4, rating: 2, expected: 18},                          // round(14 * 1.25)
		{name: "rating four", attempts: 4, rating: 4, expected: 11},                         // round(14 * 0.75)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Interval(tc.attempts, tc.rating))
		})
	}
}

func TestInterval_MonotonicInAttempts(t *testing.T) {
	for rating := MinDifficultyRating; rating <= MaxDifficultyRating; rating++ {
		prev := 0
		for attempts := 1; attempts <= 12; attempts++ {
			cur := Interval(attempts, rating)
			assert.GreaterOrEqual(t, cur, prev,
				"interval shrank at attempts=%d rating=%d", attempts, rating)
			prev = cur
		}
	}
}

func TestInterval_HarderRatingNeverLonger(t *testing.T) {
	for attempts := 1; attempts <= 10; attempts++ {
		easiest := Interval(attempts, MinDifficultyRating)
		hardest := Interval(attempts, MaxDifficultyRating)
		assert.GreaterOrEqual(t, easiest, hardest, "attempts=%d", attempts)
	}
}

func TestNextReviewDate(t *testing.T) {
	lastReview := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	next := NextReviewDate(3, lastReview, 3)
	assert.Equal(t, lastReview.AddDate(0, 0, 7), next)

	// Deterministic: equal inputs give equal outputs.
	assert.Equal(t, next, NextReviewDate(3, lastReview, 3))

	// Result is never before the last review.
	for attempts := 1; attempts <= 10; attempts++ {
		for rating := MinDifficultyRating; rating <= MaxDifficultyRating; rating++ {
			assert.True(t, NextReviewDate(attempts, lastReview, rating).After(lastReview))
		}
	}
}

func TestIsValidDifficultyRating(t *testing.T) {
	assert.False(t, IsValidDifficultyRating(0))
	assert.True(t, IsValidDifficultyRating(1))
	assert.True(t, IsValidDifficultyRating(3))
	assert.True(t, IsValidDifficultyRating(5))
	assert.False(t, IsValidDifficultyRating(6))
	assert.False(t, IsValidDifficultyRating(-1))
}
