package services

import (
	"time"

	"github.com/tejasnv/internhub/internal/pkg/helpers"
)

// ExpectedReports returns how many monthly reports an internship should
// have by now: one per calendar month started between the start date and
// the earlier of now and the end date. Internships that have not started
// yet expect nothing.
func ExpectedReports(start, end, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	until := now
	if end.Before(now) {
		until = end
	}
	return helpers.MonthsBetween(start, until)
}

// ExpectedVisits returns how many faculty visits an internship should
// have by now, one per interval of the configured number of months. An
// interval of 1 expects a visit every started month.
func ExpectedVisits(start, end, now time.Time, intervalMonths int) int {
	if intervalMonths < 1 {
		intervalMonths = 1
	}
	months := ExpectedReports(start, end, now)
	if months == 0 {
		return 0
	}
	return (months + intervalMonths - 1) / intervalMonths
}

// withinWindow reports whether a date falls inside the internship
// period, inclusive of both the start and end calendar days.
func withinWindow(date, start, end time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(startDay) && !day.After(endDay)
}

// periodInWindow reports whether a report period (year, month) overlaps
// the internship window.
func periodInWindow(year, month int, start, end time.Time) bool {
	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	first := helpers.MonthStart(start)
	last := helpers.MonthStart(end)
	return !period.Before(first) && !period.After(last)
}
