package dateutil

import (
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekendSet is the set of weekdays treated as non-working days.
// An empty set means no day is a weekend.
type WeekendSet map[time.Weekday]struct{}

// NewWeekendSet builds a WeekendSet from weekday names. Matching is
// case-insensitive; unrecognized names are ignored.
func NewWeekendSet(names []string) WeekendSet {
	set := make(WeekendSet)
	for _, name := range names {
		if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			set[wd] = struct{}{}
		}
	}
	return set
}

func (s WeekendSet) Contains(day time.Weekday) bool {
	_, ok := s[day]
	return ok
}

// CountInRange returns how many dates in [start, end] fall on a weekend day.
func (s WeekendSet) CountInRange(start, end time.Time) int {
	if len(s) == 0 {
		return 0
	}
	start = DateOnly(start)
	end = DateOnly(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if s.Contains(d.Weekday()) {
			count++
		}
	}
	return count
}
