package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"plantrack/internal/event"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 16, hour, minute, 0, 0, time.UTC)
}

func span(id string, start, end time.Time, summary string, booked bool) event.Event {
	return event.Event{ID: id, Start: start, End: end, Summary: summary, Booked: booked}
}

func assertNoOverlaps(t *testing.T, events []event.Event) {
	t.Helper()
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if events[i].Overlaps(events[j]) {
				t.Errorf("events %s and %s overlap: [%v,%v) and [%v,%v)",
					events[i].ID, events[j].ID,
					events[i].Start, events[i].End,
					events[j].Start, events[j].End)
			}
		}
	}
}

func TestResolveSplitsOverlappedEvent(t *testing.T) {
	existing := []event.Event{
		span("old", at(9, 0), at(12, 0), "acme:build", true),
	}
	incoming := span("new", at(10, 0), at(11, 0), "acme:meeting", false)

	result := Resolve(existing, incoming)

	if len(result) != 3 {
		t.Fatalf("got %d events, want 3", len(result))
	}

	before, middle, after := result[0], result[1], result[2]

	if !before.Start.Equal(at(9, 0)) || !before.End.Equal(at(10, 0)) {
		t.Errorf("before fragment = [%v,%v), want [09:00,10:00)", before.Start, before.End)
	}
	if before.Summary != "acme:build" || !before.Booked {
		t.Error("before fragment must keep the original attributes")
	}
	if before.ID == "old" {
		t.Error("before fragment must get a fresh id")
	}

	if middle.ID != "new" || !middle.Start.Equal(at(10, 0)) || !middle.End.Equal(at(11, 0)) {
		t.Errorf("incoming event must survive unmodified, got %s [%v,%v)", middle.ID, middle.Start, middle.End)
	}

	if !after.Start.Equal(at(11, 0)) || !after.End.Equal(at(12, 0)) {
		t.Errorf("after fragment = [%v,%v), want [11:00,12:00)", after.Start, after.End)
	}
	if after.ID == "old" || after.ID == before.ID {
		t.Error("fragments must get distinct fresh ids")
	}

	// The three segments cover exactly the original range.
	var total time.Duration
	for _, e := range result {
		total += e.Duration()
	}
	if total != 3*time.Hour {
		t.Errorf("total duration = %v, want 3h", total)
	}

	assertNoOverlaps(t, result)
}

func TestResolveKeepsDisjointEvents(t *testing.T) {
	existing := []event.Event{
		span("a", at(8, 0), at(9, 0), "acme:standup", true),
		span("b", at(13, 0), at(14, 0), "acme:review", false),
	}
	incoming := span("new", at(10, 0), at(11, 0), "acme:meeting", true)

	result := Resolve(existing, incoming)

	if len(result) != 3 {
		t.Fatalf("got %d events, want 3", len(result))
	}
	for _, id := range []string{"a", "new", "b"} {
		found := false
		for _, e := range result {
			if e.ID == id {
				found = true
			}
		}
		if !found {
			t.Errorf("event %s missing from result", id)
		}
	}
	assertNoOverlaps(t, result)
}

func TestResolveSwallowsContainedEvent(t *testing.T) {
	existing := []event.Event{
		span("old", at(10, 0), at(10, 30), "acme:break", false),
	}
	incoming := span("new", at(9, 0), at(12, 0), "acme:workshop", true)

	result := Resolve(existing, incoming)

	if len(result) != 1 {
		t.Fatalf("got %d events, want 1", len(result))
	}
	if result[0].ID != "new" {
		t.Errorf("surviving event = %s, want new", result[0].ID)
	}
}

func TestResolveTrimsPartialOverlap(t *testing.T) {
	existing := []event.Event{
		span("old", at(9, 0), at(11, 0), "acme:build", true),
	}
	incoming := span("new", at(10, 0), at(12, 0), "acme:meeting", true)

	result := Resolve(existing, incoming)

	if len(result) != 2 {
		t.Fatalf("got %d events, want 2", len(result))
	}
	if !result[0].Start.Equal(at(9, 0)) || !result[0].End.Equal(at(10, 0)) {
		t.Errorf("trimmed fragment = [%v,%v), want [09:00,10:00)", result[0].Start, result[0].End)
	}
	if result[1].ID != "new" {
		t.Errorf("second event = %s, want new", result[1].ID)
	}
	assertNoOverlaps(t, result)
}

func TestInsertMaintainsInvariantOverSequence(t *testing.T) {
	var events []event.Event

	inserts := []event.Event{
		span("e1", at(9, 0), at(12, 0), "acme:build", true),
		span("e2", at(10, 0), at(11, 0), "acme:meeting", false),
		span("e3", at(8, 30), at(10, 30), "acme:triage", true),
		span("e4", at(11, 30), at(13, 0), "beta:call", false),
		span("e5", at(8, 0), at(14, 0), "acme:offsite", true),
	}

	for _, incoming := range inserts {
		events, _ = Insert(events, incoming)
		assertNoOverlaps(t, events)
	}

	// The last insert covers everything before it.
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ID != "e5" {
		t.Errorf("surviving event = %s, want e5", events[0].ID)
	}
}

func TestInsertReportsDiff(t *testing.T) {
	existing := []event.Event{
		span("old", at(9, 0), at(12, 0), "acme:build", true),
	}
	incoming := span("new", at(10, 0), at(11, 0), "acme:meeting", false)

	_, diff := Insert(existing, incoming)

	if len(diff.Removed) != 1 || diff.Removed[0].ID != "old" {
		t.Errorf("diff.Removed = %v, want the split original", diff.Removed)
	}
	// The incoming event plus two fragments.
	if len(diff.Added) != 3 {
		t.Errorf("len(diff.Added) = %d, want 3", len(diff.Added))
	}
	if len(diff.Modified) != 0 {
		t.Errorf("len(diff.Modified) = %d, want 0", len(diff.Modified))
	}
}

func TestInsertInvariantsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	labels := []string{"acme:build", "acme:review", "beta:call", "chores:email"}

	var events []event.Event
	for i := 0; i < 500; i++ {
		start := at(0, 0).Add(time.Duration(rng.Intn(24*4)) * 15 * time.Minute)
		end := start.Add(time.Duration(1+rng.Intn(12)) * 15 * time.Minute)
		incoming := event.Event{
			ID:      event.NewID(),
			Start:   start,
			End:     end,
			Summary: labels[rng.Intn(len(labels))],
			Booked:  rng.Intn(2) == 0,
		}

		events, _ = Insert(events, incoming)

		assertNoOverlaps(t, events)
		if diff := cmp.Diff(events, Compact(events)); diff != "" {
			t.Fatalf("insert %d left a compactable set (-got +compacted):\n%s", i, diff)
		}
		if t.Failed() {
			t.Fatalf("invariant broken after insert %d of %v", i, incoming)
		}
	}
}

func TestCarveRemovesSubrange(t *testing.T) {
	existing := []event.Event{
		span("old", at(9, 0), at(12, 0), "acme:build", true),
		span("other", at(13, 0), at(14, 0), "acme:review", false),
	}

	result, diff := Carve(existing, at(10, 0), at(11, 0))

	if len(result) != 3 {
		t.Fatalf("got %d events, want 3", len(result))
	}
	if !result[0].End.Equal(at(10, 0)) || !result[1].Start.Equal(at(11, 0)) {
		t.Errorf("fragments do not leave a [10:00,11:00) hole: %v", result)
	}
	for _, e := range result {
		if e.ID == "old" {
			t.Error("carved event must not keep its id")
		}
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ID != "old" {
		t.Errorf("diff.Removed = %v, want the carved original", diff.Removed)
	}

	// The untouched event passes through unchanged.
	if result[2].ID != "other" {
		t.Errorf("untouched event = %s, want other", result[2].ID)
	}
	assertNoOverlaps(t, result)
}
