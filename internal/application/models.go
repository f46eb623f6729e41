package application

import (
	"time"

	"github.com/example/workforce-scheduler/internal/scheduling"
)

// Principal identifies the manager invoking a service method.
type Principal struct {
	ManagerID string
	Section   string
	Initials  string
}

// TaskStatus enumerates the lifecycle states of a scheduled task.
type TaskStatus string

const (
	// TaskStatusPending marks a task that has not started yet.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusInProgress marks a task currently being worked.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusCompleted marks a finished task.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusDelayed marks a task pushed back after a delay report.
	TaskStatusDelayed TaskStatus = "delayed"
)

// AllocationMode selects how assignees are chosen for a new task.
type AllocationMode string

const (
	// AllocationManual uses the assignee ids supplied by the caller.
	AllocationManual AllocationMode = "manual"
	// AllocationAuto picks assignees by remaining capacity.
	AllocationAuto AllocationMode = "auto"
)

// TaskInput captures caller provided task fields.
type TaskInput struct {
	Title            string
	Date             string
	StartTime        string
	PackageCount     int
	TeamSize         int
	PaletteGood      bool
	AssigneeIDs      []string
	AllocationMode   AllocationMode
	ConfirmConflicts bool
}

// Task represents a persisted work task with its derived schedule.
type Task struct {
	ID              string
	Title           string
	Date            string
	Start           scheduling.TimeOfDay
	End             scheduling.TimeOfDay
	PackageCount    int
	TeamSize        int
	AssigneeIDs     []string
	ManagerSection  string
	ManagerInitials string
	Status          TaskStatus
	DelayMinutes    *int
	DelayReason     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ConflictWarning describes a scheduling overlap surfaced to callers.
type ConflictWarning struct {
	Source string
	ID     string
	Title  string
	Start  string
	End    string
}

// AllocationAdvisory describes a non-blocking concern about a manual
// assignment choice.
type AllocationAdvisory struct {
	EmployeeID string
	Reason     string
}

// CreateTaskParams wraps the data required to create a task.
type CreateTaskParams struct {
	Principal Principal
	Input     TaskInput
}

// UpdateTaskParams wraps the data required to update an existing task.
type UpdateTaskParams struct {
	Principal Principal
	TaskID    string
	Input     TaskInput
}

// ListTasksParams wraps the data required to list a day's tasks.
type ListTasksParams struct {
	Principal Principal
	Date      string
}

// ReportDelayParams wraps the data required to record a task delay.
type ReportDelayParams struct {
	Principal Principal
	TaskID    string
	Minutes   int
	Reason    string
}

// EstimateParams wraps the data required for a standalone duration estimate.
type EstimateParams struct {
	PackageCount int
	TeamSize     int
	PaletteGood  bool
	StartTime    string
	Quick        bool
}

// EstimateResult reports a computed duration and, when a start time was
// supplied, the derived end of the work window.
type EstimateResult struct {
	TotalSeconds    int
	Hours           int
	Minutes         int
	Seconds         int
	RequiredMinutes int
	EndTime         string
}

// EmployeeInput captures caller provided employee attributes.
type EmployeeInput struct {
	DisplayName     string
	Section         string
	Shift           string
	CapacityMinutes int
}

// Employee represents a worker that tasks can be assigned to.
type Employee struct {
	ID              string
	DisplayName     string
	Section         string
	Shift           string
	CapacityMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateEmployeeParams wraps the data required to create an employee.
type CreateEmployeeParams struct {
	Principal Principal
	Input     EmployeeInput
}

// UpdateEmployeeParams wraps the data required to update an employee.
type UpdateEmployeeParams struct {
	Principal  Principal
	EmployeeID string
	Input      EmployeeInput
}

// AvailabilityReport summarizes an employee's remaining capacity on a date.
type AvailabilityReport struct {
	EmployeeID       string
	Date             string
	TotalMinutes     int
	CommittedMinutes int
	RemainingMinutes int
	IsAvailable      bool
}

// EventInput captures caller provided recurring event fields.
type EventInput struct {
	Title           string
	StartTime       string
	DurationMinutes int
	Recurrence      string
	Weekdays        []time.Weekday
	StartDate       string
	EndDate         *string
	IsActive        bool
}

// RecurringEvent represents a repeating calendar entry that blocks task time.
type RecurringEvent struct {
	ID              string
	Title           string
	Start           scheduling.TimeOfDay
	DurationMinutes int
	Recurrence      string
	Weekdays        []time.Weekday
	StartDate       string
	EndDate         *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateEventParams wraps the data required to create a recurring event.
type CreateEventParams struct {
	Principal Principal
	Input     EventInput
}

// UpdateEventParams wraps the data required to update a recurring event.
type UpdateEventParams struct {
	Principal Principal
	EventID   string
	Input     EventInput
}

// Break represents a scheduled rest period for an employee.
type Break struct {
	ID         string
	EmployeeID string
	Title      string
	Date       string
	Start      scheduling.TimeOfDay
	End        scheduling.TimeOfDay
	CreatedAt  time.Time
}
