package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/workforce-scheduler/internal/alert"
	"github.com/example/workforce-scheduler/internal/persistence"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

// TaskRepository captures the persistence interactions needed by the service.
type TaskRepository interface {
	CreateTask(ctx context.Context, task Task) (Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, task Task) (Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasksByDate(ctx context.Context, date string) ([]Task, error)
}

// EmployeeDirectory exposes employee lookup operations.
type EmployeeDirectory interface {
	MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// OccurrenceSource expands recurring events onto a concrete date.
type OccurrenceSource interface {
	OccurrencesOn(ctx context.Context, date string) ([]scheduling.Occurrence, error)
}

// BreakCalendar exposes the scheduled breaks for a date.
type BreakCalendar interface {
	ListBreaksByDate(ctx context.Context, date string) ([]Break, error)
}

// delayCriticalMinutes is the delay length at which an alert escalates from
// warning to critical.
const delayCriticalMinutes = 30

// TaskServiceDeps bundles the collaborators wired into a TaskService.
type TaskServiceDeps struct {
	Tasks        TaskRepository
	Employees    EmployeeDirectory
	Occurrences  OccurrenceSource
	Breaks       BreakCalendar
	FixedEvents  []scheduling.FixedEvent
	Alerts       alert.Sink
	ShiftMinutes int
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// TaskService orchestrates estimation, conflict detection, allocation, and
// persistence for task operations.
type TaskService struct {
	tasks        TaskRepository
	employees    EmployeeDirectory
	occurrences  OccurrenceSource
	breaks       BreakCalendar
	fixedEvents  []scheduling.FixedEvent
	alerts       alert.Sink
	shiftMinutes int
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
	warnings     *warningCache
}

// NewTaskService wires dependencies for task operations.
func NewTaskService(deps TaskServiceDeps) *TaskService {
	idGenerator := deps.IDGenerator
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	shiftMinutes := deps.ShiftMinutes
	if shiftMinutes <= 0 {
		shiftMinutes = 480
	}
	return &TaskService{
		tasks:        deps.Tasks,
		employees:    deps.Employees,
		occurrences:  deps.Occurrences,
		breaks:       deps.Breaks,
		fixedEvents:  deps.FixedEvents,
		alerts:       deps.Alerts,
		shiftMinutes: shiftMinutes,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(deps.Logger),
		warnings:     newWarningCache(0, 0, now),
	}
}

func (s *TaskService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TaskService", operation, attrs...)
}

// CreateTask validates the request, derives the schedule from the duration
// estimate, surfaces conflicts, allocates assignees, and persists the task.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams) (task Task, warnings []ConflictWarning, err error) {
	if s == nil {
		err = fmt.Errorf("TaskService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateTask",
		"manager_id", params.Principal.ManagerID,
		"date", params.Input.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create task", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("task_id", task.ID, "warning_count", len(warnings)).InfoContext(ctx, "task created")
	}()

	input := params.Input

	vErr := &ValidationError{}
	validateTaskCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	estimate := scheduling.EstimateDuration(input.PackageCount, input.TeamSize, input.PaletteGood)
	start := scheduling.ParseTimeOfDay(input.StartTime)
	end, wrapped := estimate.EndTime(start)
	if wrapped {
		vErr.add("start_time", "task would extend past the end of the day")
		err = vErr
		return
	}
	proposed := scheduling.Interval{Start: start, End: end}

	dayTasks, err := s.listDay(ctx, input.Date, "")
	if err != nil {
		return Task{}, nil, err
	}

	warnings, err = s.detectConflicts(ctx, input.Date, proposed, dayTasks)
	if err != nil {
		return Task{}, nil, err
	}
	if len(warnings) > 0 && !input.ConfirmConflicts {
		err = &ConflictPendingError{Warnings: warnings}
		warnings = nil
		return
	}

	assignees, err := s.resolveAssignees(ctx, input, proposed, estimate.RequiredMinutes(), dayTasks)
	if err != nil {
		return Task{}, nil, err
	}

	createdAt := s.now()
	task = Task{
		ID:              s.idGenerator(),
		Title:           strings.TrimSpace(input.Title),
		Date:            input.Date,
		Start:           start,
		End:             end,
		PackageCount:    input.PackageCount,
		TeamSize:        input.TeamSize,
		AssigneeIDs:     assignees,
		ManagerSection:  params.Principal.Section,
		ManagerInitials: params.Principal.Initials,
		Status:          TaskStatusPending,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}

	if s.tasks == nil {
		return
	}

	persisted, perr := s.tasks.CreateTask(ctx, task)
	if perr != nil {
		err = mapTaskRepoError(perr)
		task = Task{}
		warnings = nil
		return
	}

	s.warnings.Invalidate()
	task = persisted
	return
}

// UpdateTask re-derives the schedule for the new inputs and persists the
// change, keeping the task's identity and lifecycle state.
func (s *TaskService) UpdateTask(ctx context.Context, params UpdateTaskParams) (task Task, warnings []ConflictWarning, err error) {
	if s == nil {
		err = fmt.Errorf("TaskService is nil")
		return
	}
	if s.tasks == nil {
		err = fmt.Errorf("task repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateTask",
		"manager_id", params.Principal.ManagerID,
		"task_id", params.TaskID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update task", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("warning_count", len(warnings)).InfoContext(ctx, "task updated")
	}()

	existing, gerr := s.tasks.GetTask(ctx, params.TaskID)
	if gerr != nil {
		err = mapTaskRepoError(gerr)
		return
	}

	input := params.Input

	vErr := &ValidationError{}
	validateTaskCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	estimate := scheduling.EstimateDuration(input.PackageCount, input.TeamSize, input.PaletteGood)
	start := scheduling.ParseTimeOfDay(input.StartTime)
	end, wrapped := estimate.EndTime(start)
	if wrapped {
		vErr.add("start_time", "task would extend past the end of the day")
		err = vErr
		return
	}
	proposed := scheduling.Interval{Start: start, End: end}

	dayTasks, derr := s.listDay(ctx, input.Date, existing.ID)
	if derr != nil {
		err = derr
		return
	}

	warnings, err = s.detectConflicts(ctx, input.Date, proposed, dayTasks)
	if err != nil {
		return Task{}, nil, err
	}
	if len(warnings) > 0 && !input.ConfirmConflicts {
		err = &ConflictPendingError{Warnings: warnings}
		warnings = nil
		return
	}

	assignees, aerr := s.resolveAssignees(ctx, input, proposed, estimate.RequiredMinutes(), dayTasks)
	if aerr != nil {
		err = aerr
		return
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Date = input.Date
	updated.Start = start
	updated.End = end
	updated.PackageCount = input.PackageCount
	updated.TeamSize = input.TeamSize
	updated.AssigneeIDs = assignees
	updated.UpdatedAt = s.now()

	persisted, perr := s.tasks.UpdateTask(ctx, updated)
	if perr != nil {
		err = mapTaskRepoError(perr)
		warnings = nil
		return
	}

	s.warnings.Invalidate()
	task = persisted
	return
}

// GetTask fetches a single task by id.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (Task, error) {
	if s == nil {
		return Task{}, fmt.Errorf("TaskService is nil")
	}
	if s.tasks == nil {
		return Task{}, fmt.Errorf("task repository not configured")
	}
	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return Task{}, mapTaskRepoError(err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, principal Principal, taskID string) error {
	if s == nil {
		return fmt.Errorf("TaskService is nil")
	}
	if s.tasks == nil {
		return fmt.Errorf("task repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteTask",
		"manager_id", principal.ManagerID,
		"task_id", taskID,
	)

	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		err = mapTaskRepoError(err)
		logger.ErrorContext(ctx, "failed to delete task", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	s.warnings.Invalidate()
	logger.InfoContext(ctx, "task deleted")
	return nil
}

// ListTasks enumerates a day's tasks in chronological order, with conflict
// warnings among them.
func (s *TaskService) ListTasks(ctx context.Context, params ListTasksParams) (tasks []Task, warnings []ConflictWarning, err error) {
	if s == nil {
		err = fmt.Errorf("TaskService is nil")
		return
	}
	if s.tasks == nil {
		err = fmt.Errorf("task repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListTasks",
		"manager_id", params.Principal.ManagerID,
		"date", params.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list tasks", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(tasks), "warning_count", len(warnings)).InfoContext(ctx, "tasks listed")
	}()

	if _, derr := scheduling.ParseDate(params.Date); derr != nil {
		vErr := &ValidationError{}
		vErr.add("date", "date must be formatted as YYYY-MM-DD")
		err = vErr
		return
	}

	raw, lerr := s.tasks.ListTasksByDate(ctx, params.Date)
	if lerr != nil {
		if errors.Is(lerr, persistence.ErrNotFound) {
			return nil, nil, nil
		}
		err = lerr
		return
	}

	tasks = make([]Task, len(raw))
	copy(tasks, raw)
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Start != tasks[j].Start {
			return tasks[i].Start < tasks[j].Start
		}
		return tasks[i].ID < tasks[j].ID
	})

	cacheKey := buildWarningCacheKey(params)
	if cached, ok := s.warnings.Get(cacheKey); ok {
		warnings = cached
		return
	}

	warnings = detectListConflicts(tasks)
	s.warnings.Store(cacheKey, warnings)
	return
}

// ReportDelay pushes a task back by the reported minutes, records the reason,
// and dispatches an alert. Delays of half an hour or more escalate to
// critical.
func (s *TaskService) ReportDelay(ctx context.Context, params ReportDelayParams) (task Task, err error) {
	if s == nil {
		err = fmt.Errorf("TaskService is nil")
		return
	}
	if s.tasks == nil {
		err = fmt.Errorf("task repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ReportDelay",
		"manager_id", params.Principal.ManagerID,
		"task_id", params.TaskID,
		"delay_minutes", params.Minutes,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to report delay", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "delay reported")
	}()

	vErr := &ValidationError{}
	if params.Minutes <= 0 {
		vErr.add("minutes", "delay minutes must be positive")
	}
	if strings.TrimSpace(params.Reason) == "" {
		vErr.add("reason", "reason is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing, gerr := s.tasks.GetTask(ctx, params.TaskID)
	if gerr != nil {
		err = mapTaskRepoError(gerr)
		return
	}

	newEnd := existing.End.Add(params.Minutes)
	if newEnd > scheduling.EndOfDay {
		vErr.add("minutes", "delay would push the task past the end of the day")
		err = vErr
		return
	}

	minutes := params.Minutes
	reason := strings.TrimSpace(params.Reason)

	updated := existing
	updated.Start = existing.Start.Add(params.Minutes)
	updated.End = newEnd
	updated.Status = TaskStatusDelayed
	updated.DelayMinutes = &minutes
	updated.DelayReason = &reason
	updated.UpdatedAt = s.now()

	persisted, perr := s.tasks.UpdateTask(ctx, updated)
	if perr != nil {
		err = mapTaskRepoError(perr)
		return
	}

	s.warnings.Invalidate()
	s.dispatchDelayAlert(ctx, persisted, minutes, reason)
	task = persisted
	return
}

// CompleteTask marks a task finished.
func (s *TaskService) CompleteTask(ctx context.Context, principal Principal, taskID string) (task Task, err error) {
	if s == nil {
		err = fmt.Errorf("TaskService is nil")
		return
	}
	if s.tasks == nil {
		err = fmt.Errorf("task repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CompleteTask",
		"manager_id", principal.ManagerID,
		"task_id", taskID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to complete task", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "task completed")
	}()

	existing, gerr := s.tasks.GetTask(ctx, taskID)
	if gerr != nil {
		err = mapTaskRepoError(gerr)
		return
	}

	updated := existing
	updated.Status = TaskStatusCompleted
	updated.UpdatedAt = s.now()

	persisted, perr := s.tasks.UpdateTask(ctx, updated)
	if perr != nil {
		err = mapTaskRepoError(perr)
		return
	}

	s.warnings.Invalidate()
	task = persisted
	return
}

// Estimate computes a standalone duration estimate without touching
// persistence. A supplied start time also yields the derived end.
func (s *TaskService) Estimate(params EstimateParams) (EstimateResult, error) {
	vErr := &ValidationError{}
	if params.PackageCount < 0 {
		vErr.add("package_count", "package count must not be negative")
	}
	if params.StartTime != "" && !scheduling.IsClockString(params.StartTime) {
		vErr.add("start_time", "start time must be formatted as HH:MM")
	}
	if vErr.HasErrors() {
		return EstimateResult{}, vErr
	}

	var estimate scheduling.Estimate
	if params.Quick {
		estimate = scheduling.EstimateQuick(params.PackageCount)
	} else {
		estimate = scheduling.EstimateDuration(params.PackageCount, params.TeamSize, params.PaletteGood)
	}

	result := EstimateResult{
		TotalSeconds:    estimate.TotalSeconds,
		Hours:           estimate.Hours,
		Minutes:         estimate.Minutes,
		Seconds:         estimate.Seconds,
		RequiredMinutes: estimate.RequiredMinutes(),
	}

	if params.StartTime != "" {
		end, wrapped := estimate.EndTime(scheduling.ParseTimeOfDay(params.StartTime))
		if wrapped {
			vErr.add("start_time", "task would extend past the end of the day")
			return EstimateResult{}, vErr
		}
		result.EndTime = end.String()
	}

	return result, nil
}

// listDay fetches the day's tasks, excluding the task being edited.
func (s *TaskService) listDay(ctx context.Context, date, excludeID string) ([]Task, error) {
	if s.tasks == nil {
		return nil, nil
	}
	tasks, err := s.tasks.ListTasksByDate(ctx, date)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if excludeID == "" {
		return tasks, nil
	}
	filtered := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID == excludeID {
			continue
		}
		filtered = append(filtered, task)
	}
	return filtered, nil
}

func (s *TaskService) detectConflicts(ctx context.Context, date string, proposed scheduling.Interval, dayTasks []Task) ([]ConflictWarning, error) {
	bookings := make([]scheduling.Booking, 0, len(dayTasks))
	for _, task := range dayTasks {
		bookings = append(bookings, toBooking(task))
	}

	var occurrences []scheduling.Occurrence
	if s.occurrences != nil {
		var err error
		occurrences, err = s.occurrences.OccurrencesOn(ctx, date)
		if err != nil {
			return nil, err
		}
	}

	conflicts := scheduling.DetectConflicts(proposed, bookings, s.fixedEvents, occurrences)
	return toConflictWarnings(conflicts), nil
}

// resolveAssignees validates a manual selection or picks a team automatically
// by remaining capacity.
func (s *TaskService) resolveAssignees(ctx context.Context, input TaskInput, proposed scheduling.Interval, requiredMinutes int, dayTasks []Task) ([]string, error) {
	mode := input.AllocationMode
	if mode == "" {
		mode = AllocationManual
	}

	switch mode {
	case AllocationManual:
		ids := sortStrings(uniqueStrings(input.AssigneeIDs))
		if err := s.ensureEmployeesExist(ctx, ids); err != nil {
			return nil, err
		}
		return ids, nil
	case AllocationAuto:
		candidates, err := s.buildCandidates(ctx, input.Date, dayTasks)
		if err != nil {
			return nil, err
		}
		picked, ok := scheduling.PickTeam(proposed, requiredMinutes, input.TeamSize, candidates)
		if !ok {
			return nil, ErrNoEmployeeAvailable
		}
		return sortStrings(picked), nil
	default:
		vErr := &ValidationError{}
		vErr.add("allocation_mode", "allocation mode must be manual or auto")
		return nil, vErr
	}
}

// ReviewAssignees returns non-blocking advisories about a manual selection
// for the given schedule window. excludeTaskID names the task the selection
// belongs to, so its own booking never counts against its assignees.
func (s *TaskService) ReviewAssignees(ctx context.Context, date, excludeTaskID string, proposed scheduling.Interval, requiredMinutes int, assigneeIDs []string) ([]AllocationAdvisory, error) {
	if s == nil || s.tasks == nil {
		return nil, nil
	}

	dayTasks, err := s.listDay(ctx, date, excludeTaskID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.buildCandidates(ctx, date, dayTasks)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]scheduling.Candidate, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.EmployeeID] = candidate
	}

	selected := make([]scheduling.Candidate, 0, len(assigneeIDs))
	for _, id := range assigneeIDs {
		if candidate, ok := byID[id]; ok {
			selected = append(selected, candidate)
		}
	}

	advisories := scheduling.ReviewManual(proposed, requiredMinutes, selected)
	if len(advisories) == 0 {
		return nil, nil
	}
	out := make([]AllocationAdvisory, 0, len(advisories))
	for _, advisory := range advisories {
		out = append(out, AllocationAdvisory{
			EmployeeID: advisory.EmployeeID,
			Reason:     string(advisory.Reason),
		})
	}
	return out, nil
}

// buildCandidates derives each employee's remaining minutes on the date from
// their shift capacity minus assigned task and break minutes.
func (s *TaskService) buildCandidates(ctx context.Context, date string, dayTasks []Task) ([]scheduling.Candidate, error) {
	if s.employees == nil {
		return nil, nil
	}
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	bookings := make([]scheduling.Booking, 0, len(dayTasks))
	for _, task := range dayTasks {
		bookings = append(bookings, toBooking(task))
	}

	var breaks []Break
	if s.breaks != nil {
		breaks, err = s.breaks.ListBreaksByDate(ctx, date)
		if err != nil && !errors.Is(err, persistence.ErrNotFound) {
			return nil, err
		}
	}

	candidates := make([]scheduling.Candidate, 0, len(employees))
	for _, employee := range employees {
		capacity := employee.CapacityMinutes
		if capacity <= 0 {
			capacity = s.shiftMinutes
		}

		used := 0
		commitments := make([]scheduling.Booking, len(bookings))
		copy(commitments, bookings)
		for _, booking := range bookings {
			if assignedTo(booking, employee.ID) {
				used += booking.Interval.Minutes()
			}
		}
		for _, rest := range breaks {
			if rest.EmployeeID != employee.ID {
				continue
			}
			interval := scheduling.Interval{Start: rest.Start, End: rest.End}
			used += interval.Minutes()
			commitments = append(commitments, scheduling.Booking{
				ID:          rest.ID,
				Title:       rest.Title,
				Interval:    interval,
				AssigneeIDs: []string{rest.EmployeeID},
			})
		}

		remaining := capacity - used
		if remaining < 0 {
			remaining = 0
		}
		candidates = append(candidates, scheduling.Candidate{
			EmployeeID:       employee.ID,
			RemainingMinutes: remaining,
			Commitments:      commitments,
		})
	}
	return candidates, nil
}

func (s *TaskService) ensureEmployeesExist(ctx context.Context, ids []string) error {
	if s.employees == nil || len(ids) == 0 {
		return nil
	}
	missing, err := s.employees.MissingEmployeeIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	vErr := &ValidationError{}
	vErr.add("assignees", fmt.Sprintf("unknown employee ids: %s", strings.Join(missing, ", ")))
	return vErr
}

func (s *TaskService) dispatchDelayAlert(ctx context.Context, task Task, minutes int, reason string) {
	if s.alerts == nil {
		return
	}
	severity := alert.SeverityWarning
	if minutes >= delayCriticalMinutes {
		severity = alert.SeverityCritical
	}
	a := alert.Alert{
		TaskID:    task.ID,
		ManagerID: task.ManagerInitials,
		Message:   fmt.Sprintf("task %q delayed by %d minutes: %s", task.Title, minutes, reason),
		Severity:  severity,
	}
	if err := s.alerts.Dispatch(ctx, a); err != nil {
		s.loggerWith(ctx, "ReportDelay", "task_id", task.ID).
			ErrorContext(ctx, "failed to dispatch delay alert", "error", err)
	}
}

func validateTaskCore(input TaskInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if _, err := scheduling.ParseDate(input.Date); err != nil {
		vErr.add("date", "date must be formatted as YYYY-MM-DD")
	}
	if !scheduling.IsClockString(input.StartTime) {
		vErr.add("start_time", "start time must be formatted as HH:MM")
	}
	if input.PackageCount <= 0 {
		vErr.add("package_count", "package count must be positive")
	}
	if input.TeamSize < 1 {
		vErr.add("team_size", "team size must be at least one")
	}
	if input.AllocationMode != "" && input.AllocationMode != AllocationManual && input.AllocationMode != AllocationAuto {
		vErr.add("allocation_mode", "allocation mode must be manual or auto")
	}
	if input.AllocationMode == AllocationManual && len(input.AssigneeIDs) > input.TeamSize && input.TeamSize >= 1 {
		vErr.add("assignees", "assignee count exceeds team size")
	}
}

func toBooking(task Task) scheduling.Booking {
	assignees := make([]string, len(task.AssigneeIDs))
	copy(assignees, task.AssigneeIDs)
	return scheduling.Booking{
		ID:          task.ID,
		Title:       task.Title,
		Interval:    scheduling.Interval{Start: task.Start, End: task.End},
		AssigneeIDs: assignees,
	}
}

func assignedTo(booking scheduling.Booking, employeeID string) bool {
	for _, id := range booking.AssigneeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

func toConflictWarnings(conflicts []scheduling.Conflict) []ConflictWarning {
	if len(conflicts) == 0 {
		return nil
	}
	warnings := make([]ConflictWarning, 0, len(conflicts))
	for _, conflict := range conflicts {
		warnings = append(warnings, ConflictWarning{
			Source: string(conflict.Source),
			ID:     conflict.ID,
			Title:  conflict.Title,
			Start:  conflict.Interval.Start.String(),
			End:    conflict.Interval.End.String(),
		})
	}
	return warnings
}

func detectListConflicts(tasks []Task) []ConflictWarning {
	if len(tasks) <= 1 {
		return nil
	}

	warnings := make([]ConflictWarning, 0)
	for i, candidate := range tasks {
		if i+1 >= len(tasks) {
			break
		}
		proposed := scheduling.Interval{Start: candidate.Start, End: candidate.End}
		bookings := make([]scheduling.Booking, 0, len(tasks)-i-1)
		for _, other := range tasks[i+1:] {
			bookings = append(bookings, toBooking(other))
		}
		conflicts := scheduling.DetectConflicts(proposed, bookings, nil, nil)
		warnings = append(warnings, toConflictWarnings(conflicts)...)
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

func sortStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}

func mapTaskRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("time", "start must be before end")
		return vErr
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("assignees", "related records are missing")
		return vErr
	}
	return err
}
