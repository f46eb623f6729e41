package sqlite

import (
	"context"
	"time"

	"github.com/example/workforce-scheduler/internal/persistence"
)

// EmployeeRepository implements persistence.EmployeeRepository using SQLite.
type EmployeeRepository struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewEmployeeRepository creates a SQLite-backed employee repository.
func NewEmployeeRepository(pool *ConnectionPool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool, now: time.Now}
}

const employeeColumns = `id, display_name, section, shift, capacity_minutes, created_at, updated_at`

// CreateEmployee inserts a new employee record.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee persistence.Employee) error {
	if employee.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := r.now().UTC()
	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		employee.ID,
		employee.DisplayName,
		employee.Section,
		employee.Shift,
		employee.CapacityMinutes,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	return mapError(err)
}

// UpdateEmployee rewrites an employee record, preserving CreatedAt.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, employee persistence.Employee) error {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE employees
		SET display_name = ?, section = ?, shift = ?, capacity_minutes = ?, updated_at = ?
		WHERE id = ?`,
		employee.DisplayName,
		employee.Section,
		employee.Shift,
		employee.CapacityMinutes,
		r.now().UTC().Format(time.RFC3339),
		employee.ID,
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
	return nil
}

// GetEmployee retrieves an employee by id.
func (r *EmployeeRepository) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	row := r.pool.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	employee, err := scanEmployee(row)
	if err != nil {
		return persistence.Employee{}, mapError(err)
	}
	return employee, nil
}

// ListEmployees returns all employees ordered by display name.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees
		ORDER BY display_name, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	employees := make([]persistence.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, mapError(err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	if len(employees) == 0 {
		return nil, nil
	}
	return employees, nil
}

// DeleteEmployee removes an employee; breaks and team assignments cascade.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
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

func scanEmployee(row rowScanner) (persistence.Employee, error) {
	var (
		employee  persistence.Employee
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&employee.ID,
		&employee.DisplayName,
		&employee.Section,
		&employee.Shift,
		&employee.CapacityMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Employee{}, err
	}
	employee.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	employee.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return employee, nil
}

var _ persistence.EmployeeRepository = (*EmployeeRepository)(nil)
var _ persistence.TaskRepository = (*TaskRepository)(nil)
