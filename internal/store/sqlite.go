// Package store provides SQLite persistence for the schedule.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"plantrack/internal/event"
)

// SQLite implements event.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations. The parent
// directory is created if missing.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Load returns all stored events sorted by start time.
func (s *SQLite) Load(ctx context.Context) ([]event.Event, error) {
	query := `
		SELECT id, start_utc, end_utc, summary, note, location, booked
		FROM events
		ORDER BY start_utc, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			e          event.Event
			start, end string
		)
		if err := rows.Scan(&e.ID, &start, &end, &e.Summary, &e.Note, &e.Location, &e.Booked); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if e.Start, err = parseInstant(start); err != nil {
			return nil, fmt.Errorf("parsing start time: %w", err)
		}
		if e.End, err = parseInstant(end); err != nil {
			return nil, fmt.Errorf("parsing end time: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// ReplaceAll atomically replaces the stored set with the given events.
func (s *SQLite) ReplaceAll(ctx context.Context, events []event.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	query := `
		INSERT INTO events (id, start_utc, end_utc, summary, note, location, booked)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range events {
		_, err := tx.ExecContext(ctx, query,
			e.ID,
			formatInstant(e.Start),
			formatInstant(e.End),
			e.Summary,
			e.Note,
			e.Location,
			e.Booked,
		)
		if err != nil {
			return fmt.Errorf("inserting event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Instants are stored as RFC 3339 UTC strings so that the start_utc index
// sorts chronologically.
func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
