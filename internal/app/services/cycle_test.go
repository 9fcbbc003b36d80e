package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpectedReports(t *testing.T) {
	start := day(2026, time.June, 1)
	end := day(2026, time.August, 31)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "before start", now: day(2026, time.May, 20), want: 0},
		{name: "first month", now: day(2026, time.June, 15), want: 1},
		{name: "second month started", now: day(2026, time.July, 1), want: 2},
		{name: "last month", now: day(2026, time.August, 30), want: 3},
		{name: "after end caps at window", now: day(2026, time.December, 1), want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpectedReports(start, end, tt.now))
		})
	}
}

func TestExpectedVisits(t *testing.T) {
	start := day(2026, time.January, 10)
	end := day(2026, time.June, 30)
	now := day(2026, time.June, 30) // six months started

	assert.Equal(t, 6, ExpectedVisits(start, end, now, 1))
	assert.Equal(t, 3, ExpectedVisits(start, end, now, 2))
	assert.Equal(t, 2, ExpectedVisits(start, end, now, 3))
	// Partial interval still expects a visit
	assert.Equal(t, 2, ExpectedVisits(start, end, now, 4))
	// Bad interval falls back to monthly
	assert.Equal(t, 6, ExpectedVisits(start, end, now, 0))
	// Not yet started
	assert.Equal(t, 0, ExpectedVisits(start, end, day(2025, time.December, 1), 1))
}

func TestWithinWindow(t *testing.T) {
	start := day(2026, time.June, 1)
	end := day(2026, time.August, 31)

	assert.True(t, withinWindow(day(2026, time.June, 1), start, end))
	assert.True(t, withinWindow(day(2026, time.August, 31), start, end))
	assert.True(t, withinWindow(time.Date(2026, time.August, 31, 23, 0, 0, 0, time.UTC), start, end))
	assert.False(t, withinWindow(day(2026, time.May, 31), start, end))
	assert.False(t, withinWindow(day(2026, time.September, 1), start, end))
}

func TestPeriodInWindow(t *testing.T) {
	start := day(2026, time.June, 15)
	end := day(2026, time.August, 10)

	assert.True(t, periodInWindow(2026, 6, start, end))
	assert.True(t, periodInWindow(2026, 8, start, end))
	assert.False(t, periodInWindow(2026, 5, start, end))
	assert.False(t, periodInWindow(2026, 9, start, end))
	assert.False(t, periodInWindow(2025, 7, start, end))
}
