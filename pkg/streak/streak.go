// Package streak computes consecutive-day solve streaks.
// All day arithmetic uses the UTC calendar; solve timestamps recorded in
// other offsets are converted before comparison.
package streak

import (
	"sort"
	"time"
)

// Current returns the length of the consecutive-day streak ending today or
// yesterday, relative to now. Multiple solves on the same UTC calendar day
// count once. A most recent solve older than yesterday breaks the streak.
func Current(now time.Time, solvedAt []time.Time) int {
	if len(solvedAt) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(solvedAt))
	seen := make(map[time.Time]struct{}, len(solvedAt))

	for _, ts := range solvedAt {
		day := toDay(ts)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := toDay(now)
	yesterday := today.AddDate(0, 0, -1)

	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			streak++
			continue
		}
		break
	}

	return streak
}

func toDay(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
