package persistence

import "context"

// TaskRepository stores scheduled tasks and their team assignments.
type TaskRepository interface {
	CreateTask(ctx context.Context, task Task) error
	UpdateTask(ctx context.Context, task Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasksByDate(ctx context.Context, date string) ([]Task, error)
	ListTasksForEmployee(ctx context.Context, employeeID, date string) ([]Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// EmployeeRepository exposes CRUD operations for employees.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) error
	UpdateEmployee(ctx context.Context, employee Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// RecurringEventRepository stores recurring event templates.
type RecurringEventRepository interface {
	CreateEvent(ctx context.Context, event RecurringEvent) error
	UpdateEvent(ctx context.Context, event RecurringEvent) error
	GetEvent(ctx context.Context, id string) (RecurringEvent, error)
	ListEvents(ctx context.Context) ([]RecurringEvent, error)
	ListActiveEvents(ctx context.Context) ([]RecurringEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// BreakRepository stores per-employee break intervals.
type BreakRepository interface {
	CreateBreak(ctx context.Context, brk Break) error
	ListBreaksByDate(ctx context.Context, date string) ([]Break, error)
	ListBreaksForEmployee(ctx context.Context, employeeID, date string) ([]Break, error)
	DeleteBreak(ctx context.Context, id string) error
}
