package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionPhase(t *testing.T) {
	tests := []struct {
		name string
		from InternshipPhase
		to   InternshipPhase
		want bool
	}{
		{name: "not started to active", from: PhaseNotStarted, to: PhaseActive, want: true},
		{name: "active to completed", from: PhaseActive, to: PhaseCompleted, want: true},
		{name: "active to terminated", from: PhaseActive, to: PhaseTerminated, want: true},
		{name: "not started cannot complete", from: PhaseNotStarted, to: PhaseCompleted, want: false},
		{name: "completed is terminal", from: PhaseCompleted, to: PhaseActive, want: false},
		{name: "terminated is terminal", from: PhaseTerminated, to: PhaseActive, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionPhase(tt.from, tt.to))
		})
	}
}

func TestCanActivateOn(t *testing.T) {
	app := &InternshipApplication{
		StartDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "day before start", now: time.Date(2026, time.May, 31, 23, 0, 0, 0, time.UTC), want: false},
		{name: "month before start", now: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC), want: false},
		{name: "start day morning", now: time.Date(2026, time.June, 1, 0, 30, 0, 0, time.UTC), want: true},
		{name: "after start", now: time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.CanActivateOn(tt.now))
		})
	}
}

func TestApplicationWindow(t *testing.T) {
	app := &InternshipApplication{
		StartDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
	}
	start, end := app.Window()
	assert.Equal(t, app.StartDate, start)
	assert.Equal(t, app.EndDate, end)
}
