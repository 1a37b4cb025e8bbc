package schedule

import (
	"plantrack/internal/event"
)

// attrKey groups events by their non-temporal attributes.
type attrKey struct {
	summary  string
	note     string
	location string
	booked   bool
}

// Compact fuses chronologically adjacent events that share all
// non-temporal attributes into a single event spanning the union. The
// earliest event in a fold keeps its id; consumed ids are discarded.
// Compact is idempotent and returns the set sorted by start time.
func Compact(events []event.Event) []event.Event {
	groups := make(map[attrKey][]event.Event)
	for _, e := range events {
		key := attrKey{e.Summary, e.Note, e.Location, e.Booked}
		groups[key] = append(groups[key], e)
	}

	result := make([]event.Event, 0, len(events))
	for _, group := range groups {
		event.SortByStart(group)
		merged := group[0]
		for _, next := range group[1:] {
			if merged.CanMerge(next) {
				merged.End = next.End
				continue
			}
			result = append(result, merged)
			merged = next
		}
		result = append(result, merged)
	}

	event.SortByStart(result)
	return result
}
