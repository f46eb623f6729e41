package sqlite

import (
	"context"
	"time"

	"github.com/example/workforce-scheduler/internal/persistence"
)

// BreakRepository implements persistence.BreakRepository using SQLite.
type BreakRepository struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewBreakRepository creates a SQLite-backed break repository.
func NewBreakRepository(pool *ConnectionPool) *BreakRepository {
	return &BreakRepository{pool: pool, now: time.Now}
}

const breakColumns = `id, employee_id, title, date, start_time, end_time, created_at`

// CreateBreak inserts a break interval for an employee.
func (r *BreakRepository) CreateBreak(ctx context.Context, brk persistence.Break) error {
	if brk.ID == "" {
		return persistence.ErrConstraintViolation
	}
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO breaks (`+breakColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		brk.ID,
		brk.EmployeeID,
		brk.Title,
		brk.Date,
		brk.StartTime,
		brk.EndTime,
		r.now().UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// ListBreaksByDate returns all breaks on a date ordered by start time.
func (r *BreakRepository) ListBreaksByDate(ctx context.Context, date string) ([]persistence.Break, error) {
	return r.listBreaks(ctx, `
		SELECT `+breakColumns+` FROM breaks
		WHERE date = ?
		ORDER BY start_time, id`, date)
}

// ListBreaksForEmployee returns one employee's breaks on a date.
func (r *BreakRepository) ListBreaksForEmployee(ctx context.Context, employeeID, date string) ([]persistence.Break, error) {
	return r.listBreaks(ctx, `
		SELECT `+breakColumns+` FROM breaks
		WHERE employee_id = ? AND date = ?
		ORDER BY start_time, id`, employeeID, date)
}

// DeleteBreak removes a break by id.
func (r *BreakRepository) DeleteBreak(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM breaks WHERE id = ?`, id)
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

func (r *BreakRepository) listBreaks(ctx context.Context, query string, args ...any) ([]persistence.Break, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	breaks := make([]persistence.Break, 0)
	for rows.Next() {
		var (
			brk       persistence.Break
			createdAt string
		)
		err := rows.Scan(
			&brk.ID,
			&brk.EmployeeID,
			&brk.Title,
			&brk.Date,
			&brk.StartTime,
			&brk.EndTime,
			&createdAt,
		)
		if err != nil {
			return nil, mapError(err)
		}
		brk.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	if len(breaks) == 0 {
		return nil, nil
	}
	return breaks, nil
}

var _ persistence.BreakRepository = (*BreakRepository)(nil)
