package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"plantrack/internal/dateutil"
	"plantrack/internal/event"
	"plantrack/internal/ics"
	"plantrack/internal/report"
	"plantrack/internal/schedule"
	"plantrack/internal/store"
)

// openStore creates a fresh store for each test with automatic cleanup.
func openStore(t *testing.T) *store.SQLite {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "plantrack.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// parseRange parses a timespan on a given date or fails the test.
func parseRange(t *testing.T, spec, date string, now time.Time) (time.Time, time.Time) {
	t.Helper()
	start, end, err := dateutil.ParseRange(spec, date, 15, time.UTC, now)
	if err != nil {
		t.Fatalf("failed to parse range %q on %q: %v", spec, date, err)
	}
	return start, end
}

// newEvent builds an event from a label and timespan or fails the test.
func newEvent(t *testing.T, label, spec, date string, now time.Time, booked bool) event.Event {
	t.Helper()
	summary, err := event.ParseLabel(label)
	if err != nil {
		t.Fatalf("failed to parse label %q: %v", label, err)
	}
	start, end := parseRange(t, spec, date, now)
	return event.Event{
		ID:      event.NewID(),
		Start:   start,
		End:     end,
		Summary: summary,
		Booked:  booked,
	}
}

// insert applies an event to the stored schedule and persists the result.
func insert(t *testing.T, s *store.SQLite, incoming event.Event) schedule.Diff {
	t.Helper()
	ctx := context.Background()
	base, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	resolved, diff := schedule.Insert(base, incoming)
	if err := s.ReplaceAll(ctx, resolved); err != nil {
		t.Fatalf("failed to persist events: %v", err)
	}
	return diff
}

// TestFullWorkflow covers a complete planning session: add events, overlap
// an existing one, merge adjacent entries, book time, report, and export.
func TestFullWorkflow(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	// 1. Plan a morning of work
	insert(t, s, newEvent(t, "acme:build", "09:00-11:00", "2025-05-01", now, false))
	insert(t, s, newEvent(t, "acme:review", "11:00-12:00", "2025-05-01", now, false))
	insert(t, s, newEvent(t, "chores:email", "13:00-14:00", "2025-05-01", now, false))

	events, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// 2. A meeting lands in the middle of the build slot: the build event
	// must be split around it.
	meeting := newEvent(t, "acme:standup", "09:30-10:00", "2025-05-01", now, false)
	diff := insert(t, s, meeting)
	if len(diff.Added) != 3 {
		t.Errorf("expected meeting plus 2 fragments added, got %d", len(diff.Added))
	}
	if len(diff.Removed) != 1 {
		t.Errorf("expected the split event removed, got %d", len(diff.Removed))
	}

	events, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events after split, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Start.Before(events[i-1].End) {
			t.Fatalf("events overlap after insert: %v and %v", events[i-1], events[i])
		}
	}

	// 3. Replacing the meeting with more build time merges the fragments
	// back into a single block.
	refill := newEvent(t, "acme:build", "09:30-10:00", "2025-05-01", now, false)
	insert(t, s, refill)

	events, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected fragments to merge back to 3 events, got %d", len(events))
	}
	var build *event.Event
	for i := range events {
		if events[i].Summary == "acme:build" {
			build = &events[i]
		}
	}
	if build == nil {
		t.Fatal("build event missing after merge")
	}
	if build.Duration() != 2*time.Hour {
		t.Errorf("merged build duration = %v, want 2h", build.Duration())
	}

	// 4. Book the build block by replacing it with a booked copy.
	booked := newEvent(t, "acme:build", "09:00-11:00", "2025-05-01", now, true)
	insert(t, s, booked)

	// 5. Report on the month: booked and planned split per task.
	events, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	rep := report.Aggregate(events, "acme", 2025, time.May, time.UTC, nil)
	if rep.Total != 3*time.Hour {
		t.Errorf("report total = %v, want 3h", rep.Total)
	}
	if rep.Booked != 2*time.Hour {
		t.Errorf("report booked = %v, want 2h", rep.Booked)
	}
	if rep.Planned != time.Hour {
		t.Errorf("report planned = %v, want 1h", rep.Planned)
	}
	if len(rep.Tasks) != 2 {
		t.Errorf("expected 2 tasks in report, got %d", len(rep.Tasks))
	}

	// 6. Find a free afternoon slot around the email block.
	dayEnd := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	slotStart, _, err := schedule.FindSlot(events, now, dayEnd, 90*time.Minute, 15, now)
	if err != nil {
		t.Fatalf("failed to find slot: %v", err)
	}
	if conflicts := schedule.Conflicts(events, slotStart, slotStart.Add(90*time.Minute)); len(conflicts) != 0 {
		t.Errorf("found slot conflicts with %v", conflicts)
	}

	// 7. Export the calendar and check the booked event is CONFIRMED.
	body, exported := ics.Export(events, now, false)
	if exported != 3 {
		t.Errorf("exported = %d, want 3", exported)
	}
	cal, err := ical.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to parse exported calendar: %v", err)
	}
	confirmed := 0
	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil && p.Value == string(ical.ObjectStatusConfirmed) {
			confirmed++
		}
	}
	if confirmed != 1 {
		t.Errorf("expected 1 CONFIRMED event, got %d", confirmed)
	}
}

// TestCarveWorkflow removes a timespan from a stored event without
// touching its neighbours.
func TestCarveWorkflow(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	insert(t, s, newEvent(t, "acme:build", "09:00-12:00", "2025-05-01", now, false))

	events, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}

	start, end := parseRange(t, "10:00-10:30", "2025-05-01", now)
	remaining, diff := schedule.Carve(events, start, end)
	if err := s.ReplaceAll(ctx, remaining); err != nil {
		t.Fatalf("failed to persist events: %v", err)
	}

	if len(diff.Added) != 2 || len(diff.Removed) != 1 {
		t.Errorf("carve diff: %d added, %d removed, want 2 and 1", len(diff.Added), len(diff.Removed))
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(got))
	}
	var total time.Duration
	for _, e := range got {
		total += e.Duration()
	}
	if total != 2*time.Hour+30*time.Minute {
		t.Errorf("remaining duration = %v, want 2h30m", total)
	}
}

// TestPersistenceAcrossReopen verifies a schedule survives closing and
// reopening the database file.
func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantrack.db")
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	s, err := store.New(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	e := newEvent(t, "acme:build", "09:00-10:00", "2025-05-01", now, true)
	if err := s.ReplaceAll(ctx, []event.Event{e}); err != nil {
		t.Fatalf("failed to persist events: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened, err := store.New(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event after reopen, got %d", len(got))
	}
	if got[0].ID != e.ID || !got[0].Booked {
		t.Errorf("reloaded event = %+v, want original booked event", got[0])
	}
}
