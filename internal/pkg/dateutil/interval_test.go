package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInclusive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, DaysInclusive(date(2025, 1, 1), date(2025, 1, 1)))
	assert.Equal(t, 31, DaysInclusive(date(2025, 1, 1), date(2025, 1, 31)))
	assert.Equal(t, 0, DaysInclusive(date(2025, 1, 2), date(2025, 1, 1)))
	// Time-of-day components must not change the day count.
	assert.Equal(t, 2, DaysInclusive(
		time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC),
	))
}

func TestClippedDays(t *testing.T) {
	t.Parallel()

	windowStart := date(2025, 1, 1)
	windowEnd := date(2025, 1, 31)

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"fully inside", date(2025, 1, 10), date(2025, 1, 12), 3},
		{"overlaps start", date(2024, 12, 28), date(2025, 1, 3), 3},
		{"overlaps end", date(2025, 1, 30), date(2025, 2, 5), 2},
		{"covers window", date(2024, 12, 1), date(2025, 2, 28), 31},
		{"before window", date(2024, 12, 1), date(2024, 12, 31), 0},
		{"after window", date(2025, 2, 1), date(2025, 2, 10), 0},
		{"single day on boundary", date(2025, 1, 31), date(2025, 1, 31), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClippedDays(tt.start, tt.end, windowStart, windowEnd))
		})
	}
}

func TestWeekendSet(t *testing.T) {
	t.Parallel()

	set := NewWeekendSet([]string{"Sunday", "SATURDAY", " friday ", "notaday"})
	assert.True(t, set.Contains(time.Sunday))
	assert.True(t, set.Contains(time.Saturday))
	assert.True(t, set.Contains(time.Friday))
	assert.False(t, set.Contains(time.Monday))

	// January 2025 has 4 Sundays: 5, 12, 19, 26.
	sundays := NewWeekendSet([]string{"sunday"})
	assert.Equal(t, 4, sundays.CountInRange(date(2025, 1, 1), date(2025, 1, 31)))

	// Empty configuration means no weekends at all.
	empty := NewWeekendSet(nil)
	assert.Equal(t, 0, empty.CountInRange(date(2025, 1, 1), date(2025, 1, 31)))
}
