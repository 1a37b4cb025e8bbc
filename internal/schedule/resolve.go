// Package schedule implements the interval scheduling engine: overlap
// resolution, compaction, diffing, and slot queries over an in-memory
// event set. Every function is pure; callers own loading and persisting
// the set.
package schedule

import (
	"time"

	"plantrack/internal/event"
)

// Resolve splits every existing event that strictly overlaps incoming,
// keeping only the non-overlapping remainders, and appends incoming.
// Remainder fragments carry the existing event's attributes under fresh
// ids; incoming always wins and is kept unmodified. The result is sorted
// by start time.
func Resolve(existing []event.Event, incoming event.Event) []event.Event {
	result := carve(existing, incoming.Start, incoming.End)
	result = append(result, incoming)
	event.SortByStart(result)
	return result
}

// Insert runs the full mutation pipeline: resolve incoming against the
// set, compact the result, and report the delta against the input set.
func Insert(existing []event.Event, incoming event.Event) ([]event.Event, Diff) {
	result := Compact(Resolve(existing, incoming))
	return result, Compare(existing, result)
}

// Carve removes the time range [start, end) from every stored event,
// keeping the non-overlapping remainders as fresh-id fragments. Used for
// subrange deletion.
func Carve(existing []event.Event, start, end time.Time) ([]event.Event, Diff) {
	result := Compact(carve(existing, start, end))
	return result, Compare(existing, result)
}

// carve is the shared splitting pass: events outside [start, end) pass
// through unchanged, overlapping events are reduced to their remainders.
func carve(existing []event.Event, start, end time.Time) []event.Event {
	hole := event.Event{Start: start, End: end}
	result := make([]event.Event, 0, len(existing))
	for _, e := range existing {
		if !e.Overlaps(hole) {
			result = append(result, e)
			continue
		}
		if e.Start.Before(start) {
			before := e
			before.ID = event.NewID()
			before.End = start
			result = append(result, before)
		}
		if e.End.After(end) {
			after := e
			after.ID = event.NewID()
			after.Start = end
			result = append(result, after)
		}
	}
	event.SortByStart(result)
	return result
}
