package persistence

import "time"

// Task represents a scheduled unit of work stored in persistence. Clock
// times use the "HH:MM" wire format and dates use "YYYY-MM-DD"; collaborators
// parse these positionally, so they are stored verbatim.
type Task struct {
	ID              string
	Title           string
	Date            string
	StartTime       string
	EndTime         string
	Packages        int
	TeamSize        int
	TeamMemberIDs   []string
	ManagerSection  string
	ManagerInitials string
	Status          string
	DelayMinutes    *int
	DelayReason     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Employee represents a worker record.
type Employee struct {
	ID              string
	DisplayName     string
	Section         string
	Shift           string
	CapacityMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecurringEvent represents a repeating event template. Occurrences are
// expanded on demand and never stored.
type RecurringEvent struct {
	ID              string
	Title           string
	StartTime       string
	DurationMinutes int
	RecurrenceType  string
	RecurrenceDays  []time.Weekday
	StartDate       string
	EndDate         *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Break represents a non-work interval belonging to one employee.
type Break struct {
	ID         string
	EmployeeID string
	Title      string
	Date       string
	StartTime  string
	EndTime    string
	CreatedAt  time.Time
}
