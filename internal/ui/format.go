package ui

import (
	"fmt"
	"strings"
	"time"

	"plantrack/internal/event"
	"plantrack/internal/schedule"
)

const detailIndent = "                               "

// formatDuration renders a duration as "HH:MMh".
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%02d:%02dh", minutes/60, minutes%60)
}

// statusSymbol returns the booked/planned/missed marker for an event.
func statusSymbol(e event.Event, now time.Time) string {
	if e.Booked {
		return colorBooked.Sprint("✔")
	}
	if e.End.Before(now) {
		return colorMissed.Sprint("✗")
	}
	return colorPlanned.Sprint("≈")
}

// formatEventLine renders a single event for day listings.
func formatEventLine(e event.Event, loc *time.Location, now time.Time) string {
	start := e.Start.In(loc)
	end := e.End.In(loc)
	return fmt.Sprintf("%s - %s (%s) [%s] %s:%s (%s)",
		start.Format("15:04"),
		end.Format("15:04"),
		formatDuration(e.Duration()),
		statusSymbol(e, now),
		colorProject.Sprint(e.Project()),
		e.Task(),
		colorMuted.Sprint(e.ID),
	)
}

// printEvent prints an event line, highlighting the one covering now,
// followed by note and location detail lines.
func printEvent(e event.Event, loc *time.Location, now time.Time) {
	line := formatEventLine(e, loc, now)
	if e.Covers(now) {
		fmt.Printf("  %s\n", colorWarn.Sprintf("› %s", line))
	} else {
		fmt.Printf("    %s\n", line)
	}

	if e.Note != "" {
		fmt.Printf("%s%s\n", detailIndent, colorPlanned.Sprintf("↳ ✎: %s", e.Note))
	}
	if e.Location != "" {
		fmt.Printf("%s%s\n", detailIndent, colorPlanned.Sprintf("↳ ⌂: %s", e.Location))
	}
}

// printDayEvents prints a day's events in order with free gaps between them.
func printDayEvents(events []event.Event, loc *time.Location, now time.Time) {
	printTravel(events)

	var lastEnd time.Time
	for _, e := range events {
		if !lastEnd.IsZero() {
			if gap := e.Start.Sub(lastEnd); gap > 0 {
				fmt.Printf("%s%s\n", detailIndent, colorFree.Sprint("⋮"))
				fmt.Printf("%s%s\n", detailIndent, colorFree.Sprintf("%s free", formatDuration(gap)))
				fmt.Printf("%s%s\n", detailIndent, colorFree.Sprint("⋮"))
			}
		}
		printEvent(e, loc, now)
		lastEnd = e.End
	}
}

// printTravel prints the sequence of distinct locations visited in a day.
func printTravel(events []event.Event) {
	var stops []string
	var last string
	for _, e := range events {
		if e.Location == "" || e.Location == last {
			continue
		}
		stops = append(stops, e.Location)
		last = e.Location
	}
	if len(stops) > 0 {
		fmt.Printf("           %s\n", colorDay.Sprintf("↳ ✈: %s", strings.Join(stops, " → ")))
	}
}

// diffLine renders an event for diff output.
func diffLine(e event.Event, loc *time.Location) string {
	start := e.Start.In(loc)
	end := e.End.In(loc)
	return fmt.Sprintf("%s - %s %s (%s)",
		start.Format("2006-01-02 15:04"),
		end.Format("15:04"),
		e.Summary,
		e.ID,
	)
}

// printDiff renders the side effects of a mutation: removed events first,
// then added, then field-level modifications.
func printDiff(d schedule.Diff, loc *time.Location) {
	if d.Empty() {
		return
	}
	fmt.Println(colorWarn.Sprint("Changes to existing events:"))

	for _, e := range d.Removed {
		fmt.Printf("- %s\n", colorRemoved.Sprint(diffLine(e, loc)))
	}
	for _, e := range d.Added {
		fmt.Printf("+ %s\n", colorAdded.Sprint(diffLine(e, loc)))
	}
	for _, m := range d.Modified {
		fmt.Printf("~ %s\n", colorModified.Sprint(diffLine(m.After, loc)))
		for _, c := range m.Changes {
			switch c.Kind {
			case schedule.KindAdded:
				fmt.Printf("    %s: + %s\n", c.Field, c.New)
			case schedule.KindRemoved:
				fmt.Printf("    %s: - %s\n", c.Field, c.Old)
			default:
				fmt.Printf("    %s: %s → %s\n", c.Field, c.Old, c.New)
			}
		}
	}
	fmt.Println()
}
