package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func TestCurrent(t *testing.T) {
	testCases := []struct {
		name     string
		solvedAt []time.Time
		expected int
	}{
		{
			name:     "empty input",
			solvedAt: nil,
			expected: 0,
		},
		{
			name:     "single solve today",
			solvedAt: []time.Time{daysAgo(0)},
			expected: 1,
		},
		{
			name:     "single solve yesterday keeps streak alive",
			solvedAt: []time.Time{daysAgo(1)},
			expected: 1,
		},
		{
			name:     "three consecutive days",
			solvedAt: []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)},
			expected: 3,
		},
		{
			name:     "gap resets to recent run",
			solvedAt: []time.Time{daysAgo(0), daysAgo(3)},
			expected: 1,
		},
		{
			name:     "most recent solve too old",
			solvedAt: []time.Time{daysAgo(2), daysAgo(3), daysAgo(4)},
			expected: 0,
		},
		{
			name: "multiple solves on one day count once",
			solvedAt: []time.Time{
				daysAgo(0),
				daysAgo(0).Add(-2 * time.Hour),
				daysAgo(1),
			},
			expected: 2,
		},
		{
			name:     "unsorted input",
			solvedAt: []time.Time{daysAgo(2), daysAgo(0), daysAgo(1)},
			expected: 3,
		},
		{
			name: "streak counted from yesterday backwards",
			solvedAt: []time.Time{
				daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(5),
			},
			expected: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Current(now, tc.solvedAt))
		})
	}
}

func TestCurrent_NonUTCTimestamps(t *testing.T) {
	// 23:30 UTC-5 is 04:30 UTC the next day; comparisons use the UTC calendar.
	est := time.FixedZone("EST", -5*60*60)
	lateEvening := time.Date(2026, 3, 13, 23, 30, 0, 0, est)

	assert.Equal(t, 1, Current(now, []time.Time{lateEvening}))
}
