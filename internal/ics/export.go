// Package ics exports the schedule as an iCalendar file.
package ics

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"plantrack/internal/event"
)

// pastWindow is how far back exported events reach.
const pastWindow = 7 * 24 * time.Hour

// Export serializes all events starting after the past-window cutoff into
// an iCalendar document. The VEVENT summary is the project part of the
// label; booked events are CONFIRMED, planned events TENTATIVE. Notes are
// included as descriptions when includeNotes is set.
func Export(events []event.Event, now time.Time, includeNotes bool) (string, int) {
	cal := ical.NewCalendar()
	cal.SetProductId("-//plantrack//plantrack 1.0//EN")
	cal.SetMethod(ical.MethodPublish)

	cutoff := now.Add(-pastWindow)
	exported := 0

	for _, e := range events {
		if e.Start.Before(cutoff) {
			continue
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now.UTC())
		ve.SetStartAt(e.Start.UTC())
		ve.SetEndAt(e.End.UTC())
		ve.SetSummary(e.Project())

		if e.Booked {
			ve.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			ve.SetStatus(ical.ObjectStatusTentative)
		}

		if includeNotes && e.Note != "" {
			ve.SetDescription(e.Note)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}

		exported++
	}

	return cal.Serialize(), exported
}

// WriteFile exports the schedule to the given path.
func WriteFile(path string, events []event.Event, now time.Time, includeNotes bool) (int, error) {
	body, exported := Export(events, now, includeNotes)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return 0, fmt.Errorf("writing calendar file: %w", err)
	}
	return exported, nil
}
