package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/example/workforce-scheduler/internal/persistence"
)

// RecurringEventRepository implements persistence.RecurringEventRepository
// using SQLite. Weekday selections live in a companion table so the rule's
// day list round-trips without string packing.
type RecurringEventRepository struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewRecurringEventRepository creates a SQLite-backed event repository.
func NewRecurringEventRepository(pool *ConnectionPool) *RecurringEventRepository {
	return &RecurringEventRepository{pool: pool, now: time.Now}
}

const eventColumns = `id, title, start_time, duration_minutes, recurrence_type,
	start_date, end_date, is_active, created_at, updated_at`

// CreateEvent inserts a recurring event template and its weekday list.
func (r *RecurringEventRepository) CreateEvent(ctx context.Context, event persistence.RecurringEvent) error {
	if event.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := r.now().UTC()
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recurring_events (`+eventColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			event.ID,
			event.Title,
			event.StartTime,
			event.DurationMinutes,
			event.RecurrenceType,
			event.StartDate,
			nullString(event.EndDate),
			boolToInt(event.IsActive),
			now.Format(time.RFC3339),
			now.Format(time.RFC3339),
		)
		if err != nil {
			return mapError(err)
		}
		return r.replaceWeekdays(ctx, tx, event.ID, event.RecurrenceDays)
	})
}

// UpdateEvent rewrites an event template and its weekday list.
func (r *RecurringEventRepository) UpdateEvent(ctx context.Context, event persistence.RecurringEvent) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE recurring_events
			SET title = ?, start_time = ?, duration_minutes = ?, recurrence_type = ?,
				start_date = ?, end_date = ?, is_active = ?, updated_at = ?
			WHERE id = ?`,
			event.Title,
			event.StartTime,
			event.DurationMinutes,
			event.RecurrenceType,
			event.StartDate,
			nullString(event.EndDate),
			boolToInt(event.IsActive),
			r.now().UTC().Format(time.RFC3339),
			event.ID,
		)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return r.replaceWeekdays(ctx, tx, event.ID, event.RecurrenceDays)
	})
}

// GetEvent retrieves an event template by id.
func (r *RecurringEventRepository) GetEvent(ctx context.Context, id string) (persistence.RecurringEvent, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM recurring_events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if err != nil {
		return persistence.RecurringEvent{}, mapError(err)
	}
	weekdays, err := r.loadWeekdays(ctx, id)
	if err != nil {
		return persistence.RecurringEvent{}, err
	}
	event.RecurrenceDays = weekdays
	return event, nil
}

// ListEvents returns all event templates ordered by start time.
func (r *RecurringEventRepository) ListEvents(ctx context.Context) ([]persistence.RecurringEvent, error) {
	return r.listEvents(ctx, `SELECT `+eventColumns+` FROM recurring_events ORDER BY start_time, id`)
}

// ListActiveEvents returns only templates whose active flag is set.
func (r *RecurringEventRepository) ListActiveEvents(ctx context.Context) ([]persistence.RecurringEvent, error) {
	return r.listEvents(ctx, `SELECT `+eventColumns+` FROM recurring_events WHERE is_active = 1 ORDER BY start_time, id`)
}

// DeleteEvent removes an event template; weekday rows cascade.
func (r *RecurringEventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM recurring_events WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func (r *RecurringEventRepository) listEvents(ctx context.Context, query string) ([]persistence.RecurringEvent, error) {
	rows, err := r.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	events := make([]persistence.RecurringEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, mapError(err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	for i := range events {
		weekdays, err := r.loadWeekdays(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].RecurrenceDays = weekdays
	}
	return events, nil
}

func (r *RecurringEventRepository) replaceWeekdays(ctx context.Context, tx *sql.Tx, eventID string, weekdays []time.Weekday) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_weekdays WHERE event_id = ?`, eventID); err != nil {
		return mapError(err)
	}
	seen := make(map[time.Weekday]struct{}, len(weekdays))
	for _, day := range weekdays {
		if day < time.Sunday || day > time.Saturday {
			continue
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_weekdays (event_id, weekday) VALUES (?, ?)`,
			eventID, int(day)); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *RecurringEventRepository) loadWeekdays(ctx context.Context, eventID string) ([]time.Weekday, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT weekday FROM event_weekdays WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	weekdays := make([]time.Weekday, 0)
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, mapError(err)
		}
		weekdays = append(weekdays, time.Weekday(day))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	if len(weekdays) == 0 {
		return nil, nil
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })
	return weekdays, nil
}

func scanEvent(row rowScanner) (persistence.RecurringEvent, error) {
	var (
		event     persistence.RecurringEvent
		endDate   sql.NullString
		isActive  int
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.StartTime,
		&event.DurationMinutes,
		&event.RecurrenceType,
		&event.StartDate,
		&endDate,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.RecurringEvent{}, err
	}
	if endDate.Valid {
		value := endDate.String
		event.EndDate = &value
	}
	event.IsActive = isActive != 0
	event.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	event.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return event, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

var _ persistence.RecurringEventRepository = (*RecurringEventRepository)(nil)
