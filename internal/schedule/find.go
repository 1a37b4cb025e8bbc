package schedule

import (
	"errors"
	"time"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
)

// Query errors.
var (
	ErrNoFreeSlot      = errors.New("no free slot in window")
	ErrNoUpcomingMatch = errors.New("no upcoming event matches")
)

// Conflicts returns every stored event whose range strictly overlaps
// [start, end), in start order.
func Conflicts(existing []event.Event, start, end time.Time) []event.Event {
	probe := event.Event{Start: start, End: end}
	var conflicting []event.Event
	for _, e := range existing {
		if e.Overlaps(probe) {
			conflicting = append(conflicting, e)
		}
	}
	event.SortByStart(conflicting)
	return conflicting
}

// FindSlot scans [windowStart, windowEnd) for the first gap of the given
// duration that conflicts with no stored event. The scan begins at
// windowStart or now rounded up to the interval, whichever is later, and
// steps forward by exactly the duration. Returns ErrNoFreeSlot when the
// window is exhausted.
func FindSlot(existing []event.Event, windowStart, windowEnd time.Time, duration time.Duration, interval int, now time.Time) (start, end time.Time, err error) {
	candidate := windowStart
	if earliest := dateutil.Round(now, interval, true); earliest.After(candidate) {
		candidate = earliest
	}

	for !candidate.Add(duration).After(windowEnd) {
		if len(Conflicts(existing, candidate, candidate.Add(duration))) == 0 {
			return candidate, candidate.Add(duration), nil
		}
		candidate = candidate.Add(duration)
	}

	return time.Time{}, time.Time{}, ErrNoFreeSlot
}

// FindNext locates the earliest event with summary exactly equal to label
// that starts at or after now and spans longer than the requested
// duration, and returns the sub-interval at its start. Returns
// ErrNoUpcomingMatch when no event qualifies.
func FindNext(existing []event.Event, label string, duration time.Duration, now time.Time) (start, end time.Time, err error) {
	var best *event.Event
	for _, e := range existing {
		if e.Summary != label || e.Start.Before(now) || e.Duration() <= duration {
			continue
		}
		if best == nil || e.Start.Before(best.Start) {
			e := e
			best = &e
		}
	}
	if best == nil {
		return time.Time{}, time.Time{}, ErrNoUpcomingMatch
	}
	return best.Start, best.Start.Add(duration), nil
}
