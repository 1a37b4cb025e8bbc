package ui

import (
	"context"
	"fmt"
	"time"

	"plantrack/internal/event"
	"plantrack/internal/ics"
	"plantrack/internal/schedule"
)

// commit persists the new event set and regenerates the calendar export.
func (a *App) commit(ctx context.Context, events []event.Event, now time.Time) error {
	if err := a.store.ReplaceAll(ctx, events); err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	exported, err := ics.WriteFile(a.config.Export.ICSPath, events, now, a.config.Export.IncludeNotes)
	if err != nil {
		return err
	}
	fmt.Printf("%d events exported to %s\n", exported, a.config.Export.ICSPath)

	return nil
}

// insertEvent loads the schedule and runs the shared add flow on it.
func (a *App) insertEvent(ctx context.Context, incoming event.Event, assumeYes bool, now time.Time) error {
	events, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading schedule: %w", err)
	}
	return a.insertInto(ctx, events, incoming, assumeYes, now)
}

// insertInto resolves the incoming event against the given base set,
// shows the resulting diff, asks for confirmation, and persists.
func (a *App) insertInto(ctx context.Context, base []event.Event, incoming event.Event, assumeYes bool, now time.Time) error {
	loc, err := a.location()
	if err != nil {
		return err
	}

	result, diff := schedule.Insert(base, incoming)

	overlaps := len(diff.Removed) > 0 || len(diff.Modified) > 0
	if overlaps {
		printDiff(diff, loc)
	} else {
		fmt.Println(colorWarn.Sprint("New event:"))
		fmt.Printf("+ %s\n", colorAdded.Sprint(diffLine(incoming, loc)))
	}

	if !assumeYes {
		prompt := "Add this event?"
		if overlaps {
			prompt = "Overlapping events found. Add anyway?"
		}
		if !confirm(prompt) {
			fmt.Println(colorWarn.Sprint("Event not added"))
			return nil
		}
	}

	if err := a.commit(ctx, result, now); err != nil {
		return err
	}
	fmt.Println(colorAdded.Sprint("Event added"))
	return nil
}
