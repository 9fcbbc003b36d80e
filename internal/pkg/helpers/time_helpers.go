package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// MonthStart returns midnight UTC on the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts the number of calendar months started between from
// and to, inclusive of the month containing from. Returns 0 when to is
// before from.
func MonthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	yearDiff := to.Year() - from.Year()
	monthDiff := int(to.Month()) - int(from.Month())
	return yearDiff*12 + monthDiff + 1
}
