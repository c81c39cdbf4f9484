package services

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Accepted instant layouts, most specific first. Layouts without a zone
// are read as UTC; date-only input is already a UTC calendar date.
var dayInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDayInput parses raw into an instant. The caller normalizes the
// result with DayKeyUTC before it touches storage.
func ParseDayInput(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dayInputLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DayKeyUTC collapses an instant to its UTC calendar date at midnight UTC.
// Two instants on the same UTC day map to the same key no matter which
// zone they were expressed in; the time of day is discarded.
func DayKeyUTC(value time.Time) time.Time {
	utc := value.UTC()
	year, month, day := utc.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayRangeUTC returns the half-open [start, end) span of value's UTC day.
func DayRangeUTC(value time.Time) (time.Time, time.Time) {
	start := DayKeyUTC(value)
	return start, start.AddDate(0, 0, 1)
}
