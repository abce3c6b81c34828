package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay_DateString(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "date 2024-12-12",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "20241212",
		},
		{
			name:     "date 2024-01-01",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "20240101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := Day{Date: tt.date}
			result := day.DateString()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDay_DisplayString(t *testing.T) {
	now := time.Date(2024, 6, 20, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "today",
			date:     now.Add(-3 * time.Hour),
			expected: "Today",
		},
		{
			name:     "yesterday",
			date:     now.AddDate(0, 0, -1),
			expected: "Yesterday",
		},
		{
			name:     "specific date",
			date:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: "Jun 15 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := Day{Date: tt.date}
			assert.Equal(t, tt.expected, day.DisplayString(now))
		})
	}
}

func TestSameDay_UsesFirstArgumentLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 20:00 UTC on June 1 is already June 2 in Tokyo
	utc := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(time.Date(2024, 6, 2, 8, 0, 0, 0, tokyo), utc))
	assert.False(t, SameDay(time.Date(2024, 6, 1, 8, 0, 0, 0, tokyo), utc))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}
