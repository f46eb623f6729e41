package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/workforce-scheduler/internal/application"
	"github.com/example/workforce-scheduler/internal/persistence"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

var (
	employeeCounter uint64
	taskCounter     uint64
	eventCounter    uint64
	breakCounter    uint64
)

var referenceTime = time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the ReferenceTime calendar date in wire format.
func ReferenceDate() string {
	return scheduling.FormatDate(referenceTime)
}

// --------------------------- Employee fixtures ---------------------------

// EmployeeFixture represents a deterministic employee record that can be
// materialised for application or persistence tests.
type EmployeeFixture struct {
	ID              string
	DisplayName     string
	Section         string
	Shift           string
	CapacityMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns a deterministic employee fixture with optional overrides.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	id := fmt.Sprintf("employee-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EmployeeFixture{
		ID:              id,
		DisplayName:     fmt.Sprintf("Employee %03d", idx),
		Section:         "receiving",
		Shift:           "day",
		CapacityMinutes: 480,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee ID.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ID = id
	}
}

// WithEmployeeDisplayName overrides the generated display name.
func WithEmployeeDisplayName(name string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.DisplayName = name
	}
}

// WithEmployeeSection overrides the generated section.
func WithEmployeeSection(section string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Section = section
	}
}

// WithEmployeeShift sets the shift label on the fixture.
func WithEmployeeShift(shift string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Shift = shift
	}
}

// WithEmployeeCapacity sets the daily capacity in minutes.
func WithEmployeeCapacity(minutes int) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.CapacityMinutes = minutes
	}
}

// WithEmployeeTimestamps sets both created and updated timestamps on the fixture.
func WithEmployeeTimestamps(created, updated time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.Employee value.
func (f EmployeeFixture) Application() application.Employee {
	return application.Employee{
		ID:              f.ID,
		DisplayName:     f.DisplayName,
		Section:         f.Section,
		Shift:           f.Shift,
		CapacityMinutes: f.CapacityMinutes,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Employee value.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		ID:              f.ID,
		DisplayName:     f.DisplayName,
		Section:         f.Section,
		Shift:           f.Shift,
		CapacityMinutes: f.CapacityMinutes,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EmployeeInput.
func (f EmployeeFixture) Input() application.EmployeeInput {
	return application.EmployeeInput{
		DisplayName:     f.DisplayName,
		Section:         f.Section,
		Shift:           f.Shift,
		CapacityMinutes: f.CapacityMinutes,
	}
}

// ----------------------------- Task fixtures -----------------------------

// TaskFixture represents a deterministic task record.
type TaskFixture struct {
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
	Status          application.TaskStatus
	DelayMinutes    *int
	DelayReason     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TaskOption configures the generated task fixture.
type TaskOption func(*TaskFixture)

// NewTaskFixture returns a deterministic task fixture with optional overrides.
// Successive fixtures occupy consecutive non-overlapping hour slots starting
// at 09:00 so multi-task tests stay conflict free by default.
func NewTaskFixture(opts ...TaskOption) TaskFixture {
	idx := atomic.AddUint64(&taskCounter, 1)
	id := fmt.Sprintf("task-%03d", idx)
	start := scheduling.ParseTimeOfDay("09:00").Add(int(idx%12) * 60)
	fixture := TaskFixture{
		ID:              id,
		Title:           fmt.Sprintf("Task %03d", idx),
		Date:            ReferenceDate(),
		Start:           start,
		End:             start.Add(60),
		PackageCount:    90,
		TeamSize:        1,
		AssigneeIDs:     []string{fmt.Sprintf("employee-%03d", idx)},
		ManagerSection:  "receiving",
		ManagerInitials: "AB",
		Status:          application.TaskStatusPending,
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithTaskID overrides the task ID.
func WithTaskID(id string) TaskOption {
	return func(f *TaskFixture) {
		f.ID = id
	}
}

// WithTaskTitle overrides the title.
func WithTaskTitle(title string) TaskOption {
	return func(f *TaskFixture) {
		f.Title = title
	}
}

// WithTaskDate sets the calendar date in wire format.
func WithTaskDate(date string) TaskOption {
	return func(f *TaskFixture) {
		f.Date = date
	}
}

// WithTaskWindow sets the start and end times from "HH:MM" strings.
func WithTaskWindow(start, end string) TaskOption {
	return func(f *TaskFixture) {
		f.Start = scheduling.ParseTimeOfDay(start)
		f.End = scheduling.ParseTimeOfDay(end)
	}
}

// WithTaskPackages sets the package count.
func WithTaskPackages(count int) TaskOption {
	return func(f *TaskFixture) {
		f.PackageCount = count
	}
}

// WithTaskTeamSize sets the team size.
func WithTaskTeamSize(size int) TaskOption {
	return func(f *TaskFixture) {
		f.TeamSize = size
	}
}

// WithTaskAssignees sets the assignee IDs.
func WithTaskAssignees(assignees ...string) TaskOption {
	return func(f *TaskFixture) {
		f.AssigneeIDs = append([]string(nil), assignees...)
	}
}

// WithTaskManager sets the manager section and initials stamped on the task.
func WithTaskManager(section, initials string) TaskOption {
	return func(f *TaskFixture) {
		f.ManagerSection = section
		f.ManagerInitials = initials
	}
}

// WithTaskStatus sets the task status.
func WithTaskStatus(status application.TaskStatus) TaskOption {
	return func(f *TaskFixture) {
		f.Status = status
	}
}

// WithTaskDelay records a delay report on the fixture.
func WithTaskDelay(minutes int, reason string) TaskOption {
	return func(f *TaskFixture) {
		m := minutes
		r := reason
		f.DelayMinutes = &m
		f.DelayReason = &r
		f.Status = application.TaskStatusDelayed
	}
}

// WithTaskTimestamps sets both created and updated timestamps.
func WithTaskTimestamps(created, updated time.Time) TaskOption {
	return func(f *TaskFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.Task value.
func (f TaskFixture) Application() application.Task {
	return application.Task{
		ID:              f.ID,
		Title:           f.Title,
		Date:            f.Date,
		Start:           f.Start,
		End:             f.End,
		PackageCount:    f.PackageCount,
		TeamSize:        f.TeamSize,
		AssigneeIDs:     append([]string(nil), f.AssigneeIDs...),
		ManagerSection:  f.ManagerSection,
		ManagerInitials: f.ManagerInitials,
		Status:          f.Status,
		DelayMinutes:    copyIntPtr(f.DelayMinutes),
		DelayReason:     copyStringPtr(f.DelayReason),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Task value.
func (f TaskFixture) Persistence() persistence.Task {
	return persistence.Task{
		ID:              f.ID,
		Title:           f.Title,
		Date:            f.Date,
		StartTime:       f.Start.String(),
		EndTime:         f.End.String(),
		Packages:        f.PackageCount,
		TeamSize:        f.TeamSize,
		TeamMemberIDs:   append([]string(nil), f.AssigneeIDs...),
		ManagerSection:  f.ManagerSection,
		ManagerInitials: f.ManagerInitials,
		Status:          string(f.Status),
		DelayMinutes:    copyIntPtr(f.DelayMinutes),
		DelayReason:     copyStringPtr(f.DelayReason),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Input returns the fixture as an application.TaskInput with manual allocation.
func (f TaskFixture) Input() application.TaskInput {
	return application.TaskInput{
		Title:          f.Title,
		Date:           f.Date,
		StartTime:      f.Start.String(),
		PackageCount:   f.PackageCount,
		TeamSize:       f.TeamSize,
		PaletteGood:    true,
		AssigneeIDs:    append([]string(nil), f.AssigneeIDs...),
		AllocationMode: application.AllocationManual,
	}
}

// Booking returns the fixture as a scheduling.Booking value.
func (f TaskFixture) Booking() scheduling.Booking {
	return scheduling.Booking{
		ID:          f.ID,
		Title:       f.Title,
		Interval:    scheduling.Interval{Start: f.Start, End: f.End},
		AssigneeIDs: append([]string(nil), f.AssigneeIDs...),
	}
}

// ----------------------------- Event fixtures ----------------------------

// EventFixture represents a deterministic recurring event record.
type EventFixture struct {
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

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic recurring event fixture with optional overrides.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	id := fmt.Sprintf("event-%03d", idx)
	fixture := EventFixture{
		ID:              id,
		Title:           fmt.Sprintf("Event %03d", idx),
		Start:           scheduling.ParseTimeOfDay("08:30"),
		DurationMinutes: 15,
		Recurrence:      "daily",
		StartDate:       ReferenceDate(),
		IsActive:        true,
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the event ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventTitle overrides the title.
func WithEventTitle(title string) EventOption {
	return func(f *EventFixture) {
		f.Title = title
	}
}

// WithEventWindow sets the start time and duration.
func WithEventWindow(start string, durationMinutes int) EventOption {
	return func(f *EventFixture) {
		f.Start = scheduling.ParseTimeOfDay(start)
		f.DurationMinutes = durationMinutes
	}
}

// WithEventRecurrence sets the recurrence type and weekdays.
func WithEventRecurrence(recurrence string, weekdays ...time.Weekday) EventOption {
	return func(f *EventFixture) {
		f.Recurrence = recurrence
		f.Weekdays = append([]time.Weekday(nil), weekdays...)
	}
}

// WithEventDates sets the active date range in wire format. Pass an empty end
// date for an open-ended event.
func WithEventDates(startDate, endDate string) EventOption {
	return func(f *EventFixture) {
		f.StartDate = startDate
		if endDate == "" {
			f.EndDate = nil
			return
		}
		end := endDate
		f.EndDate = &end
	}
}

// WithEventActive sets the active flag.
func WithEventActive(active bool) EventOption {
	return func(f *EventFixture) {
		f.IsActive = active
	}
}

// WithEventTimestamps sets both created and updated timestamps.
func WithEventTimestamps(created, updated time.Time) EventOption {
	return func(f *EventFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.RecurringEvent value.
func (f EventFixture) Application() application.RecurringEvent {
	return application.RecurringEvent{
		ID:              f.ID,
		Title:           f.Title,
		Start:           f.Start,
		DurationMinutes: f.DurationMinutes,
		Recurrence:      f.Recurrence,
		Weekdays:        append([]time.Weekday(nil), f.Weekdays...),
		StartDate:       f.StartDate,
		EndDate:         copyStringPtr(f.EndDate),
		IsActive:        f.IsActive,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.RecurringEvent value.
func (f EventFixture) Persistence() persistence.RecurringEvent {
	return persistence.RecurringEvent{
		ID:              f.ID,
		Title:           f.Title,
		StartTime:       f.Start.String(),
		DurationMinutes: f.DurationMinutes,
		RecurrenceType:  f.Recurrence,
		RecurrenceDays:  append([]time.Weekday(nil), f.Weekdays...),
		StartDate:       f.StartDate,
		EndDate:         copyStringPtr(f.EndDate),
		IsActive:        f.IsActive,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EventInput.
func (f EventFixture) Input() application.EventInput {
	return application.EventInput{
		Title:           f.Title,
		StartTime:       f.Start.String(),
		DurationMinutes: f.DurationMinutes,
		Recurrence:      f.Recurrence,
		Weekdays:        append([]time.Weekday(nil), f.Weekdays...),
		StartDate:       f.StartDate,
		EndDate:         copyStringPtr(f.EndDate),
		IsActive:        f.IsActive,
	}
}

// ----------------------------- Break fixtures ----------------------------

// BreakFixture represents a deterministic break record.
type BreakFixture struct {
	ID         string
	EmployeeID string
	Title      string
	Date       string
	Start      scheduling.TimeOfDay
	End        scheduling.TimeOfDay
	CreatedAt  time.Time
}

// BreakOption configures the generated break fixture.
type BreakOption func(*BreakFixture)

// NewBreakFixture returns a deterministic break fixture with optional overrides.
func NewBreakFixture(opts ...BreakOption) BreakFixture {
	idx := atomic.AddUint64(&breakCounter, 1)
	id := fmt.Sprintf("break-%03d", idx)
	fixture := BreakFixture{
		ID:         id,
		EmployeeID: fmt.Sprintf("employee-%03d", idx),
		Title:      "Lunch",
		Date:       ReferenceDate(),
		Start:      scheduling.ParseTimeOfDay("12:00"),
		End:        scheduling.ParseTimeOfDay("12:45"),
		CreatedAt:  referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBreakID overrides the break ID.
func WithBreakID(id string) BreakOption {
	return func(f *BreakFixture) {
		f.ID = id
	}
}

// WithBreakEmployee sets the owning employee ID.
func WithBreakEmployee(employeeID string) BreakOption {
	return func(f *BreakFixture) {
		f.EmployeeID = employeeID
	}
}

// WithBreakTitle overrides the title.
func WithBreakTitle(title string) BreakOption {
	return func(f *BreakFixture) {
		f.Title = title
	}
}

// WithBreakDate sets the calendar date in wire format.
func WithBreakDate(date string) BreakOption {
	return func(f *BreakFixture) {
		f.Date = date
	}
}

// WithBreakWindow sets the start and end times from "HH:MM" strings.
func WithBreakWindow(start, end string) BreakOption {
	return func(f *BreakFixture) {
		f.Start = scheduling.ParseTimeOfDay(start)
		f.End = scheduling.ParseTimeOfDay(end)
	}
}

// Application returns the fixture as an application.Break value.
func (f BreakFixture) Application() application.Break {
	return application.Break{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Title:      f.Title,
		Date:       f.Date,
		Start:      f.Start,
		End:        f.End,
		CreatedAt:  f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Break value.
func (f BreakFixture) Persistence() persistence.Break {
	return persistence.Break{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Title:      f.Title,
		Date:       f.Date,
		StartTime:  f.Start.String(),
		EndTime:    f.End.String(),
		CreatedAt:  f.CreatedAt,
	}
}

// helper to deep copy optional strings.
func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}

// helper to deep copy optional ints.
func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
