package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{name: "same day", from: date(2026, time.June, 1), to: date(2026, time.June, 1), want: 1},
		{name: "same month", from: date(2026, time.June, 1), to: date(2026, time.June, 30), want: 1},
		{name: "next month started", from: date(2026, time.June, 15), to: date(2026, time.July, 1), want: 2},
		{name: "across year boundary", from: date(2025, time.November, 10), to: date(2026, time.February, 3), want: 4},
		{name: "to before from", from: date(2026, time.June, 1), to: date(2026, time.May, 31), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2026, time.August, 29, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, date(2026, time.August, 1), got)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
