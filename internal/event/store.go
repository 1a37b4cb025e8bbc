package event

import "context"

// Store defines the persistence interface for the schedule. The engine
// always produces a complete new event set, so writes replace the stored
// set wholesale.
type Store interface {
	// Load returns all stored events sorted by start time.
	Load(ctx context.Context) ([]Event, error)

	// ReplaceAll atomically replaces the stored set with the given events.
	ReplaceAll(ctx context.Context, events []Event) error

	// Close releases any resources held by the store.
	Close() error
}
