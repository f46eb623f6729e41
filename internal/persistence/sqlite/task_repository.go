package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/example/workforce-scheduler/internal/persistence"
)

// TaskRepository implements persistence.TaskRepository using SQLite.
type TaskRepository struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewTaskRepository creates a SQLite-backed task repository.
func NewTaskRepository(pool *ConnectionPool) *TaskRepository {
	return &TaskRepository{pool: pool, now: time.Now}
}

const taskColumns = `id, title, date, start_time, end_time, packages, team_size,
	manager_section, manager_initials, status, delay_minutes, delay_reason,
	created_at, updated_at`

// CreateTask inserts a task and its team assignments.
func (r *TaskRepository) CreateTask(ctx context.Context, task persistence.Task) error {
	if task.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := r.now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (`+taskColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID,
			task.Title,
			task.Date,
			task.StartTime,
			task.EndTime,
			task.Packages,
			task.TeamSize,
			task.ManagerSection,
			task.ManagerInitials,
			task.Status,
			nullInt(task.DelayMinutes),
			nullString(task.DelayReason),
			task.CreatedAt.Format(time.RFC3339),
			task.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return mapError(err)
		}
		return r.replaceMembers(ctx, tx, task.ID, task.TeamMemberIDs)
	})
}

// UpdateTask rewrites a task row and its team assignments. The creation
// timestamp is preserved.
func (r *TaskRepository) UpdateTask(ctx context.Context, task persistence.Task) error {
	if task.ID == "" {
		return persistence.ErrConstraintViolation
	}

	task.UpdatedAt = r.now().UTC()

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET title = ?, date = ?, start_time = ?, end_time = ?, packages = ?,
				team_size = ?, manager_section = ?, manager_initials = ?,
				status = ?, delay_minutes = ?, delay_reason = ?, updated_at = ?
			WHERE id = ?`,
			task.Title,
			task.Date,
			task.StartTime,
			task.EndTime,
			task.Packages,
			task.TeamSize,
			task.ManagerSection,
			task.ManagerInitials,
			task.Status,
			nullInt(task.DelayMinutes),
			nullString(task.DelayReason),
			task.UpdatedAt.Format(time.RFC3339),
			task.ID,
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
		return r.replaceMembers(ctx, tx, task.ID, task.TeamMemberIDs)
	})
}

// GetTask retrieves a task by id together with its team member ids.
func (r *TaskRepository) GetTask(ctx context.Context, id string) (persistence.Task, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		return persistence.Task{}, mapError(err)
	}
	members, err := r.loadMembers(ctx, []string{id})
	if err != nil {
		return persistence.Task{}, err
	}
	task.TeamMemberIDs = members[id]
	return task, nil
}

// ListTasksByDate returns all tasks on a date ordered by start time.
func (r *TaskRepository) ListTasksByDate(ctx context.Context, date string) ([]persistence.Task, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE date = ?
		ORDER BY start_time, id`, date)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return r.collectTasks(ctx, rows)
}

// ListTasksForEmployee returns tasks on a date the employee is assigned to,
// including legacy tasks with no recorded team at all.
func (r *TaskRepository) ListTasksForEmployee(ctx context.Context, employeeID, date string) ([]persistence.Task, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks t
		WHERE t.date = ?
		  AND (EXISTS (SELECT 1 FROM task_members m WHERE m.task_id = t.id AND m.employee_id = ?)
		       OR NOT EXISTS (SELECT 1 FROM task_members m WHERE m.task_id = t.id))
		ORDER BY t.start_time, t.id`, date, employeeID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return r.collectTasks(ctx, rows)
}

// DeleteTask removes a task; team assignments cascade.
func (r *TaskRepository) DeleteTask(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
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

func (r *TaskRepository) replaceMembers(ctx context.Context, tx *sql.Tx, taskID string, memberIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_members WHERE task_id = ?`, taskID); err != nil {
		return mapError(err)
	}
	seen := make(map[string]struct{}, len(memberIDs))
	for _, memberID := range memberIDs {
		if memberID == "" {
			continue
		}
		if _, ok := seen[memberID]; ok {
			continue
		}
		seen[memberID] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_members (task_id, employee_id) VALUES (?, ?)`,
			taskID, memberID); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *TaskRepository) collectTasks(ctx context.Context, rows *sql.Rows) ([]persistence.Task, error) {
	tasks := make([]persistence.Task, 0)
	ids := make([]string, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, mapError(err)
		}
		tasks = append(tasks, task)
		ids = append(ids, task.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	members, err := r.loadMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].TeamMemberIDs = members[tasks[i].ID]
	}
	return tasks, nil
}

func (r *TaskRepository) loadMembers(ctx context.Context, taskIDs []string) (map[string][]string, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]byte, 0, 2*len(taskIDs))
	args := make([]any, 0, len(taskIDs))
	for i, id := range taskIDs {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args = append(args, id)
	}

	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT task_id, employee_id FROM task_members
		WHERE task_id IN (`+string(placeholders)+`)`, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	members := make(map[string][]string, len(taskIDs))
	for rows.Next() {
		var taskID, employeeID string
		if err := rows.Scan(&taskID, &employeeID); err != nil {
			return nil, mapError(err)
		}
		members[taskID] = append(members[taskID], employeeID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	for taskID := range members {
		sort.Strings(members[taskID])
	}
	return members, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (persistence.Task, error) {
	var (
		task         persistence.Task
		delayMinutes sql.NullInt64
		delayReason  sql.NullString
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Date,
		&task.StartTime,
		&task.EndTime,
		&task.Packages,
		&task.TeamSize,
		&task.ManagerSection,
		&task.ManagerInitials,
		&task.Status,
		&delayMinutes,
		&delayReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Task{}, err
	}
	if delayMinutes.Valid {
		minutes := int(delayMinutes.Int64)
		task.DelayMinutes = &minutes
	}
	if delayReason.Valid {
		reason := delayReason.String
		task.DelayReason = &reason
	}
	task.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	task.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return task, nil
}

func nullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
