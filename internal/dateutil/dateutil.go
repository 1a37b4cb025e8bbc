// Package dateutil provides time rounding and timespan parsing utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimespan   = errors.New("timespan must be in HH:MM-HH:MM format")
)

// Round snaps t to the configured interval in minutes, zeroing seconds.
// With up=false the time retreats to the previous boundary, with up=true it
// advances to the next one. Advancing past midnight carries into the next
// calendar day.
func Round(t time.Time, interval int, up bool) time.Time {
	t = t.Truncate(time.Minute)
	if interval <= 0 {
		return t
	}
	remainder := (t.Hour()*60 + t.Minute()) % interval
	if remainder == 0 {
		return t
	}
	if up {
		return t.Add(time.Duration(interval-remainder) * time.Minute)
	}
	return t.Add(-time.Duration(remainder) * time.Minute)
}

// ParseDate parses a date in YYYY-MM-DD format and returns midnight of that
// date in loc. An empty string resolves to the date of now in loc.
func ParseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseClock parses a time of day in HH:MM format and returns hour and
// minute. The hour may be a single digit, so "9:30" and "09:30" are
// equivalent.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	return t.Hour(), t.Minute(), nil
}

// ClockOn returns the instant at the given wall-clock time on day's date,
// in day's location. Midnight plus an absolute duration is not the same
// thing on days with a DST transition.
func ClockOn(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// ParseRange parses a "HH:MM-HH:MM" timespan on the given date in loc and
// returns the UTC start and end instants. The date is optional (YYYY-MM-DD,
// empty means the date of now in loc). An end time before the start time is
// treated as spanning past midnight. The start is rounded down and the end
// rounded up to the interval in minutes.
func ParseRange(spec, date string, interval int, loc *time.Location, now time.Time) (start, end time.Time, err error) {
	i := strings.LastIndex(spec, "-")
	if i <= 0 || i == len(spec)-1 {
		return time.Time{}, time.Time{}, ErrInvalidTimespan
	}
	startStr, endStr := spec[:i], spec[i+1:]

	day, err := ParseDate(date, now, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startHour, startMin, err := ParseClock(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endHour, endMin, err := ParseClock(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start = ClockOn(day, startHour, startMin)
	end = ClockOn(day, endHour, endMin)

	// Overnight span: the end belongs to the next day.
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	start = Round(start, interval, false)
	end = Round(end, interval, true)

	return start.UTC(), end.UTC(), nil
}
