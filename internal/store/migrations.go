package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id        TEXT PRIMARY KEY,
			start_utc TEXT NOT NULL,
			end_utc   TEXT NOT NULL,
			summary   TEXT NOT NULL,
			note      TEXT NOT NULL DEFAULT '',
			location  TEXT NOT NULL DEFAULT '',
			booked    INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_utc);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
