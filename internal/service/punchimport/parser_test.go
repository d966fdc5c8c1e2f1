package punchimport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateCell(t *testing.T) {
	t.Parallel()

	jan6 := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		cell string
		want time.Time
		ok   bool
	}{
		{"2025-01-06", jan6, true},
		{"06/01/2025", jan6, true}, // day first
		{"6/1/2025", jan6, true},
		{"2025/01/06", jan6, true},
		{"06-01-2025", jan6, true},
		{"45663", jan6, true}, // Excel day serial
		{"2025-01-06 07:58:12", jan6, true},
		{"2025-01-06T07:58:12Z", jan6, true},
		// Month first only resolves when day first cannot.
		{"01/13/2025", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), true},
		{"not a date", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := parseDateCell(tt.cell)
		require.Equal(t, tt.ok, ok, "cell %q", tt.cell)
		if ok {
			assert.True(t, got.Equal(tt.want), "cell %q: got %s", tt.cell, got)
		}
	}
}

func TestParseDateCell_DayFirstWins(t *testing.T) {
	t.Parallel()

	// 03/02 is ambiguous; the day-first layout is tried before month-first.
	got, ok := parseDateCell("03/02/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestParseTimeCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell string
		want time.Duration
		ok   bool
	}{
		{"08:30", 8*time.Hour + 30*time.Minute, true},
		{"08:30:15", 8*time.Hour + 30*time.Minute + 15*time.Second, true},
		{"0.5", 12 * time.Hour, true}, // day fraction
		{"0.3541666667", 8*time.Hour + 30*time.Minute, true},
		{"2025-01-06 17:05:00", 17*time.Hour + 5*time.Minute, true},
		{"45663.75", 18 * time.Hour, true}, // datetime serial, date part dropped
		{"later", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseTimeCell(tt.cell)
		require.Equal(t, tt.ok, ok, "cell %q", tt.cell)
		if ok {
			assert.Equal(t, tt.want, got, "cell %q", tt.cell)
		}
	}
}
