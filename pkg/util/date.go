package util

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used by the API and CLI.
const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD, RFC3339 or unix seconds and returns a UTC time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange resolves optional from/to strings. A missing to means today and
// a missing from means lookbackDays before to.
func DateRange(from, to string, lookbackDays int, now time.Time) (time.Time, time.Time, error) {
	end := StartOfDay(now)
	if to != "" {
		t, err := ParseDate(to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
		}
		end = StartOfDay(t)
	}

	start := end.AddDate(0, 0, -lookbackDays)
	if from != "" {
		f, err := ParseDate(from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
		}
		start = StartOfDay(f)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("from %s must be before to %s", start.Format(DateLayout), end.Format(DateLayout))
	}
	return start, end, nil
}
