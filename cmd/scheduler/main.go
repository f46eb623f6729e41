package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/workforce-scheduler/internal/alert"
	"github.com/example/workforce-scheduler/internal/application"
	"github.com/example/workforce-scheduler/internal/config"
	httptransport "github.com/example/workforce-scheduler/internal/http"
	"github.com/example/workforce-scheduler/internal/persistence"
	"github.com/example/workforce-scheduler/internal/persistence/sqlite"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	taskStore := sqlite.NewTaskRepository(pool)
	employeeStore := sqlite.NewEmployeeRepository(pool)
	eventStore := sqlite.NewRecurringEventRepository(pool)
	breakStore := sqlite.NewBreakRepository(pool)

	taskRepo := newTaskRepositoryAdapter(taskStore)
	employeeRepo := newEmployeeRepositoryAdapter(employeeStore)
	eventRepo := newEventRepositoryAdapter(eventStore)
	breakCalendar := newBreakCalendarAdapter(breakStore)

	alertSink := alert.NewLogSink(logger)

	eventService := application.NewEventService(eventRepo, idGenerator, now, logger)
	employeeService := application.NewEmployeeService(employeeRepo, taskRepo, breakCalendar, cfg.ShiftMinutes, idGenerator, now, logger)
	taskService := application.NewTaskService(application.TaskServiceDeps{
		Tasks:        taskRepo,
		Employees:    employeeRepo,
		Occurrences:  eventService,
		Breaks:       breakCalendar,
		FixedEvents:  cfg.FixedEvents,
		Alerts:       alertSink,
		ShiftMinutes: cfg.ShiftMinutes,
		IDGenerator:  idGenerator,
		Now:          now,
		Logger:       logger,
	})

	monitor := alert.NewMonitor(taskStore, alertSink, logger, cfg.OverdueScanInterval, now)
	if err := monitor.Start(); err != nil {
		logger.Error("failed to start overdue monitor", "error", err)
		os.Exit(1)
	}
	defer monitor.Stop()

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Tasks:     httptransport.NewTaskHandler(taskService, logger),
		Estimates: httptransport.NewEstimateHandler(taskService, logger),
		Employees: httptransport.NewEmployeeHandler(employeeService, logger),
		Events:    httptransport.NewEventHandler(eventService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RequireManager(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type taskRepositoryAdapter struct {
	repo persistence.TaskRepository
}

func newTaskRepositoryAdapter(repo persistence.TaskRepository) *taskRepositoryAdapter {
	return &taskRepositoryAdapter{repo: repo}
}

func (a *taskRepositoryAdapter) CreateTask(ctx context.Context, task application.Task) (application.Task, error) {
	if err := a.repo.CreateTask(ctx, toPersistenceTask(task)); err != nil {
		return application.Task{}, err
	}
	stored, err := a.repo.GetTask(ctx, task.ID)
	if err != nil {
		return application.Task{}, err
	}
	return toApplicationTask(stored), nil
}

func (a *taskRepositoryAdapter) GetTask(ctx context.Context, id string) (application.Task, error) {
	stored, err := a.repo.GetTask(ctx, id)
	if err != nil {
		return application.Task{}, err
	}
	return toApplicationTask(stored), nil
}

func (a *taskRepositoryAdapter) UpdateTask(ctx context.Context, task application.Task) (application.Task, error) {
	if err := a.repo.UpdateTask(ctx, toPersistenceTask(task)); err != nil {
		return application.Task{}, err
	}
	stored, err := a.repo.GetTask(ctx, task.ID)
	if err != nil {
		return application.Task{}, err
	}
	return toApplicationTask(stored), nil
}

func (a *taskRepositoryAdapter) DeleteTask(ctx context.Context, id string) error {
	return a.repo.DeleteTask(ctx, id)
}

func (a *taskRepositoryAdapter) ListTasksByDate(ctx context.Context, date string) ([]application.Task, error) {
	models, err := a.repo.ListTasksByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return toApplicationTasks(models), nil
}

func (a *taskRepositoryAdapter) ListTasksForEmployee(ctx context.Context, employeeID, date string) ([]application.Task, error) {
	models, err := a.repo.ListTasksForEmployee(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	return toApplicationTasks(models), nil
}

type employeeRepositoryAdapter struct {
	repo persistence.EmployeeRepository
}

func newEmployeeRepositoryAdapter(repo persistence.EmployeeRepository) *employeeRepositoryAdapter {
	return &employeeRepositoryAdapter{repo: repo}
}

func (a *employeeRepositoryAdapter) CreateEmployee(ctx context.Context, employee application.Employee) (application.Employee, error) {
	if err := a.repo.CreateEmployee(ctx, toPersistenceEmployee(employee)); err != nil {
		return application.Employee{}, err
	}
	stored, err := a.repo.GetEmployee(ctx, employee.ID)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *employeeRepositoryAdapter) GetEmployee(ctx context.Context, id string) (application.Employee, error) {
	stored, err := a.repo.GetEmployee(ctx, id)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *employeeRepositoryAdapter) UpdateEmployee(ctx context.Context, employee application.Employee) (application.Employee, error) {
	if err := a.repo.UpdateEmployee(ctx, toPersistenceEmployee(employee)); err != nil {
		return application.Employee{}, err
	}
	stored, err := a.repo.GetEmployee(ctx, employee.ID)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *employeeRepositoryAdapter) DeleteEmployee(ctx context.Context, id string) error {
	return a.repo.DeleteEmployee(ctx, id)
}

func (a *employeeRepositoryAdapter) ListEmployees(ctx context.Context) ([]application.Employee, error) {
	models, err := a.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	employees := make([]application.Employee, 0, len(models))
	for _, model := range models {
		employees = append(employees, toApplicationEmployee(model))
	}
	return employees, nil
}

// MissingEmployeeIDs reports which ids have no employee record, satisfying
// the task service's directory dependency.
func (a *employeeRepositoryAdapter) MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	missing := make([]string, 0)
	for _, id := range ids {
		if _, err := a.repo.GetEmployee(ctx, id); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return nil, err
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	return missing, nil
}

type eventRepositoryAdapter struct {
	repo persistence.RecurringEventRepository
}

func newEventRepositoryAdapter(repo persistence.RecurringEventRepository) *eventRepositoryAdapter {
	return &eventRepositoryAdapter{repo: repo}
}

func (a *eventRepositoryAdapter) CreateEvent(ctx context.Context, event application.RecurringEvent) (application.RecurringEvent, error) {
	if err := a.repo.CreateEvent(ctx, toPersistenceEvent(event)); err != nil {
		return application.RecurringEvent{}, err
	}
	stored, err := a.repo.GetEvent(ctx, event.ID)
	if err != nil {
		return application.RecurringEvent{}, err
	}
	return toApplicationEvent(stored), nil
}

func (a *eventRepositoryAdapter) GetEvent(ctx context.Context, id string) (application.RecurringEvent, error) {
	stored, err := a.repo.GetEvent(ctx, id)
	if err != nil {
		return application.RecurringEvent{}, err
	}
	return toApplicationEvent(stored), nil
}

func (a *eventRepositoryAdapter) UpdateEvent(ctx context.Context, event application.RecurringEvent) (application.RecurringEvent, error) {
	if err := a.repo.UpdateEvent(ctx, toPersistenceEvent(event)); err != nil {
		return application.RecurringEvent{}, err
	}
	stored, err := a.repo.GetEvent(ctx, event.ID)
	if err != nil {
		return application.RecurringEvent{}, err
	}
	return toApplicationEvent(stored), nil
}

func (a *eventRepositoryAdapter) DeleteEvent(ctx context.Context, id string) error {
	return a.repo.DeleteEvent(ctx, id)
}

func (a *eventRepositoryAdapter) ListEvents(ctx context.Context) ([]application.RecurringEvent, error) {
	models, err := a.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationEvents(models), nil
}

func (a *eventRepositoryAdapter) ListActiveEvents(ctx context.Context) ([]application.RecurringEvent, error) {
	models, err := a.repo.ListActiveEvents(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationEvents(models), nil
}

type breakCalendarAdapter struct {
	repo persistence.BreakRepository
}

func newBreakCalendarAdapter(repo persistence.BreakRepository) *breakCalendarAdapter {
	return &breakCalendarAdapter{repo: repo}
}

func (a *breakCalendarAdapter) ListBreaksByDate(ctx context.Context, date string) ([]application.Break, error) {
	models, err := a.repo.ListBreaksByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return toApplicationBreaks(models), nil
}

func (a *breakCalendarAdapter) ListBreaksForEmployee(ctx context.Context, employeeID, date string) ([]application.Break, error) {
	models, err := a.repo.ListBreaksForEmployee(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	return toApplicationBreaks(models), nil
}

func toApplicationTask(model persistence.Task) application.Task {
	return application.Task{
		ID:              model.ID,
		Title:           model.Title,
		Date:            model.Date,
		Start:           scheduling.ParseTimeOfDay(model.StartTime),
		End:             scheduling.ParseTimeOfDay(model.EndTime),
		PackageCount:    model.Packages,
		TeamSize:        model.TeamSize,
		AssigneeIDs:     append([]string(nil), model.TeamMemberIDs...),
		ManagerSection:  model.ManagerSection,
		ManagerInitials: model.ManagerInitials,
		Status:          application.TaskStatus(model.Status),
		DelayMinutes:    cloneInt(model.DelayMinutes),
		DelayReason:     cloneString(model.DelayReason),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toApplicationTasks(models []persistence.Task) []application.Task {
	if len(models) == 0 {
		return nil
	}
	tasks := make([]application.Task, 0, len(models))
	for _, model := range models {
		tasks = append(tasks, toApplicationTask(model))
	}
	return tasks
}

func toPersistenceTask(task application.Task) persistence.Task {
	return persistence.Task{
		ID:              task.ID,
		Title:           task.Title,
		Date:            task.Date,
		StartTime:       task.Start.String(),
		EndTime:         task.End.String(),
		Packages:        task.PackageCount,
		TeamSize:        task.TeamSize,
		TeamMemberIDs:   append([]string(nil), task.AssigneeIDs...),
		ManagerSection:  task.ManagerSection,
		ManagerInitials: task.ManagerInitials,
		Status:          string(task.Status),
		DelayMinutes:    cloneInt(task.DelayMinutes),
		DelayReason:     cloneString(task.DelayReason),
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

func toApplicationEmployee(model persistence.Employee) application.Employee {
	return application.Employee{
		ID:              model.ID,
		DisplayName:     model.DisplayName,
		Section:         model.Section,
		Shift:           model.Shift,
		CapacityMinutes: model.CapacityMinutes,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toPersistenceEmployee(employee application.Employee) persistence.Employee {
	return persistence.Employee{
		ID:              employee.ID,
		DisplayName:     employee.DisplayName,
		Section:         employee.Section,
		Shift:           employee.Shift,
		CapacityMinutes: employee.CapacityMinutes,
		CreatedAt:       employee.CreatedAt,
		UpdatedAt:       employee.UpdatedAt,
	}
}

func toApplicationEvent(model persistence.RecurringEvent) application.RecurringEvent {
	return application.RecurringEvent{
		ID:              model.ID,
		Title:           model.Title,
		Start:           scheduling.ParseTimeOfDay(model.StartTime),
		DurationMinutes: model.DurationMinutes,
		Recurrence:      model.RecurrenceType,
		Weekdays:        append([]time.Weekday(nil), model.RecurrenceDays...),
		StartDate:       model.StartDate,
		EndDate:         cloneString(model.EndDate),
		IsActive:        model.IsActive,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toApplicationEvents(models []persistence.RecurringEvent) []application.RecurringEvent {
	if len(models) == 0 {
		return nil
	}
	events := make([]application.RecurringEvent, 0, len(models))
	for _, model := range models {
		events = append(events, toApplicationEvent(model))
	}
	return events
}

func toPersistenceEvent(event application.RecurringEvent) persistence.RecurringEvent {
	return persistence.RecurringEvent{
		ID:              event.ID,
		Title:           event.Title,
		StartTime:       event.Start.String(),
		DurationMinutes: event.DurationMinutes,
		RecurrenceType:  event.Recurrence,
		RecurrenceDays:  append([]time.Weekday(nil), event.Weekdays...),
		StartDate:       event.StartDate,
		EndDate:         cloneString(event.EndDate),
		IsActive:        event.IsActive,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

func toApplicationBreaks(models []persistence.Break) []application.Break {
	if len(models) == 0 {
		return nil
	}
	breaks := make([]application.Break, 0, len(models))
	for _, model := range models {
		breaks = append(breaks, application.Break{
			ID:         model.ID,
			EmployeeID: model.EmployeeID,
			Title:      model.Title,
			Date:       model.Date,
			Start:      scheduling.ParseTimeOfDay(model.StartTime),
			End:        scheduling.ParseTimeOfDay(model.EndTime),
			CreatedAt:  model.CreatedAt,
		})
	}
	return breaks
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
