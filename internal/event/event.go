// Package event defines the core domain types for plantrack.
package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrInvalidLabel = errors.New("label must be in project:task format")
)

// Domain errors.
var (
	ErrNotFound = errors.New("event not found")
)

// Event represents a single scheduled time interval with a project:task
// label. Start and End are absolute UTC instants with End after Start.
type Event struct {
	ID       string
	Start    time.Time // UTC
	End      time.Time // UTC
	Summary  string    // "project:task"
	Note     string    // optional
	Location string    // optional
	Booked   bool      // confirmed vs tentative
}

// NewID returns a fresh unique event identifier.
func NewID() string {
	return uuid.NewString()
}

// ParseLabel validates and normalizes a "project:task" label, trimming
// whitespace around both parts. Returns ErrInvalidLabel if the colon
// separator is missing or the project part is empty.
func ParseLabel(s string) (string, error) {
	project, task, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(project) == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLabel, s)
	}
	return strings.TrimSpace(project) + ":" + strings.TrimSpace(task), nil
}

// Project returns the part of the summary before the first colon.
func (e Event) Project() string {
	project, _, _ := strings.Cut(e.Summary, ":")
	return project
}

// Task returns the part of the summary after the first colon.
func (e Event) Task() string {
	_, task, _ := strings.Cut(e.Summary, ":")
	return task
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps returns true if the two events' time ranges strictly overlap.
// Ranges that merely touch at a boundary do not overlap.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Before(other.End) && e.End.After(other.Start)
}

// Covers returns true if t falls within [Start, End).
func (e Event) Covers(t time.Time) bool {
	return !t.Before(e.Start) && t.Before(e.End)
}

// CanMerge returns true if other directly continues this event with
// identical non-temporal attributes.
func (e Event) CanMerge(other Event) bool {
	return e.Summary == other.Summary &&
		e.Note == other.Note &&
		e.Location == other.Location &&
		e.Booked == other.Booked &&
		e.End.Equal(other.Start)
}

// SortByStart sorts events by start time, breaking ties by id so that
// repeated runs on identical input produce identical output.
func SortByStart(events []Event) {
	slices.SortFunc(events, func(a, b Event) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
