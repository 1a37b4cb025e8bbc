package schedule

import (
	"time"

	"plantrack/internal/event"
)

// ChangeKind classifies a single field change.
type ChangeKind string

const (
	// KindChanged means the field value was replaced.
	KindChanged ChangeKind = "changed"
	// KindAdded means an optional field gained a value.
	KindAdded ChangeKind = "added"
	// KindRemoved means an optional field lost its value.
	KindRemoved ChangeKind = "removed"
)

// FieldChange records one field-level difference on a modified event.
type FieldChange struct {
	Field string
	Kind  ChangeKind
	Old   string
	New   string
}

// Modification pairs the before and after state of an event that kept
// its id but changed in some field.
type Modification struct {
	Before  event.Event
	After   event.Event
	Changes []FieldChange
}

// Diff describes the structural difference between two event sets,
// keyed by event id.
type Diff struct {
	Added    []event.Event
	Removed  []event.Event
	Modified []Modification
}

// Empty returns true if the diff contains no changes.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// Compare computes the id-keyed diff between a before and after snapshot.
// Ids present only in before are removed, only in after are added, and
// present in both with differing fields are modified with per-field
// old/new values. A note or location transitioning to or from empty is
// reported as an add or remove of that field rather than a change.
func Compare(before, after []event.Event) Diff {
	var d Diff

	byID := make(map[string]event.Event, len(before))
	for _, e := range before {
		byID[e.ID] = e
	}
	seen := make(map[string]bool, len(after))

	for _, e := range after {
		seen[e.ID] = true
		old, ok := byID[e.ID]
		if !ok {
			d.Added = append(d.Added, e)
			continue
		}
		if changes := fieldChanges(old, e); len(changes) > 0 {
			d.Modified = append(d.Modified, Modification{Before: old, After: e, Changes: changes})
		}
	}

	for _, e := range before {
		if !seen[e.ID] {
			d.Removed = append(d.Removed, e)
		}
	}

	return d
}

func fieldChanges(old, new event.Event) []FieldChange {
	var changes []FieldChange

	if !old.Start.Equal(new.Start) || !old.End.Equal(new.End) {
		changes = append(changes, FieldChange{
			Field: "range",
			Kind:  KindChanged,
			Old:   formatRange(old.Start, old.End),
			New:   formatRange(new.Start, new.End),
		})
	}
	if old.Summary != new.Summary {
		changes = append(changes, FieldChange{Field: "summary", Kind: KindChanged, Old: old.Summary, New: new.Summary})
	}
	if c, ok := optionalChange("note", old.Note, new.Note); ok {
		changes = append(changes, c)
	}
	if c, ok := optionalChange("location", old.Location, new.Location); ok {
		changes = append(changes, c)
	}
	if old.Booked != new.Booked {
		changes = append(changes, FieldChange{
			Field: "booked",
			Kind:  KindChanged,
			Old:   formatBool(old.Booked),
			New:   formatBool(new.Booked),
		})
	}

	return changes
}

// optionalChange classifies a change on an optional free-text field,
// where the empty string means the field is unset.
func optionalChange(field, old, new string) (FieldChange, bool) {
	switch {
	case old == new:
		return FieldChange{}, false
	case old == "":
		return FieldChange{Field: field, Kind: KindAdded, New: new}, true
	case new == "":
		return FieldChange{Field: field, Kind: KindRemoved, Old: old}, true
	default:
		return FieldChange{Field: field, Kind: KindChanged, Old: old, New: new}, true
	}
}

func formatRange(start, end time.Time) string {
	return start.Format("2006-01-02 15:04") + " - " + end.Format("2006-01-02 15:04")
}

func formatBool(b bool) string {
	if b {
		return "booked"
	}
	return "planned"
}
