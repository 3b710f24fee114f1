// File path: internal/streak/streak.go

// Package streak counts consecutive days of completed check-ins.
package streak

import "time"

const dateLayout = "2006-01-02"

// Count walks dates (ISO strings, sorted descending, deduplicated) and
// returns the length of the unbroken run ending at today. A run that
// starts yesterday still counts: skipping today's check-in does not
// reset the streak until a full day is missed.
func Count(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	streak := 0
	current := truncate(today)
	for _, d := range dates {
		checkDate, err := time.Parse(dateLayout, d)
		if err != nil {
			break
		}
		switch {
		case checkDate.Equal(current):
			streak++
			current = current.AddDate(0, 0, -1)
		case checkDate.Equal(current.AddDate(0, 0, -1)):
			streak++
			current = checkDate.AddDate(0, 0, -1)
		default:
			return streak
		}
	}
	return streak
}

func truncate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
