package dateutil

import "time"

// DateOnly strips the time-of-day component, keeping the calendar date in UTC.
// All period math in this package works on calendar dates only; callers are
// expected to normalize inputs before comparing ranges.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive returns the number of calendar days in [start, end], both ends
// included. Returns 0 when end is before start.
func DaysInclusive(start, end time.Time) int {
	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// ClippedDays returns the inclusive day count of the intersection of
// [rangeStart, rangeEnd] with [windowStart, windowEnd], or 0 if the two
// ranges do not intersect.
func ClippedDays(rangeStart, rangeEnd, windowStart, windowEnd time.Time) int {
	start := DateOnly(rangeStart)
	if ws := DateOnly(windowStart); start.Before(ws) {
		start = ws
	}
	end := DateOnly(rangeEnd)
	if we := DateOnly(windowEnd); end.After(we) {
		end = we
	}
	if end.Before(start) {
		return 0
	}
	return DaysInclusive(start, end)
}
