package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version tracks the last one
// applied so reopening an existing database only runs the tail.
var migrations = []string{
	`CREATE TABLE employees (
		id               TEXT PRIMARY KEY,
		display_name     TEXT NOT NULL,
		section          TEXT NOT NULL DEFAULT '',
		shift            TEXT NOT NULL DEFAULT '',
		capacity_minutes INTEGER NOT NULL DEFAULT 480 CHECK (capacity_minutes >= 0),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	);
	CREATE TABLE tasks (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		date             TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		packages         INTEGER NOT NULL DEFAULT 0 CHECK (packages >= 0),
		team_size        INTEGER NOT NULL DEFAULT 1 CHECK (team_size >= 1),
		manager_section  TEXT NOT NULL DEFAULT '',
		manager_initials TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'pending',
		delay_minutes    INTEGER,
		delay_reason     TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		CHECK (start_time < end_time)
	);
	CREATE INDEX idx_tasks_date ON tasks(date);
	CREATE TABLE task_members (
		task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, employee_id)
	);
	CREATE TABLE recurring_events (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		recurrence_type  TEXT NOT NULL,
		start_date       TEXT NOT NULL,
		end_date         TEXT,
		is_active        INTEGER NOT NULL DEFAULT 1,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	);
	CREATE TABLE event_weekdays (
		event_id TEXT NOT NULL REFERENCES recurring_events(id) ON DELETE CASCADE,
		weekday  INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
		PRIMARY KEY (event_id, weekday)
	);
	CREATE TABLE breaks (
		id          TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		title       TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		CHECK (start_time < end_time)
	);
	CREATE INDEX idx_breaks_date ON breaks(date);`,
}

// Migrate brings the database schema up to date.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	var version int
	if err := cp.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		statement := migrations[i]
		next := i + 1
		err := cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.Exec(statement); err != nil {
				return fmt.Errorf("sqlite: migration %d: %w", next, err)
			}
			// PRAGMA does not accept bind parameters.
			if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", next)); err != nil {
				return fmt.Errorf("sqlite: bump schema version to %d: %w", next, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
