package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/workforce-scheduler/internal/alert"
	"github.com/example/workforce-scheduler/internal/application"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// TaskServiceDeps captures dependencies for constructing a task service.
type TaskServiceDeps struct {
	Tasks        application.TaskRepository
	Employees    application.EmployeeDirectory
	Occurrences  application.OccurrenceSource
	Breaks       application.BreakCalendar
	FixedEvents  []scheduling.FixedEvent
	Alerts       alert.Sink
	ShiftMinutes int
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewTaskService builds a task service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewTaskService(deps TaskServiceDeps) *application.TaskService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewTaskService(application.TaskServiceDeps{
		Tasks:        deps.Tasks,
		Employees:    deps.Employees,
		Occurrences:  deps.Occurrences,
		Breaks:       deps.Breaks,
		FixedEvents:  deps.FixedEvents,
		Alerts:       deps.Alerts,
		ShiftMinutes: deps.ShiftMinutes,
		IDGenerator:  idGen,
		Now:          now,
		Logger:       deps.Logger,
	})
}

// EmployeeServiceDeps captures dependencies for constructing an employee service.
type EmployeeServiceDeps struct {
	Employees    application.EmployeeRepository
	Tasks        application.EmployeeTaskSource
	Breaks       application.EmployeeBreakSource
	ShiftMinutes int
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewEmployeeService builds an employee service using the supplied dependencies.
func (f *ServiceFactory) NewEmployeeService(deps EmployeeServiceDeps) *application.EmployeeService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewEmployeeService(
		deps.Employees,
		deps.Tasks,
		deps.Breaks,
		deps.ShiftMinutes,
		idGen,
		now,
		deps.Logger,
	)
}

// EventServiceDeps captures dependencies for constructing an event service.
type EventServiceDeps struct {
	Events      application.EventRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEventService builds an event service using the supplied dependencies.
func (f *ServiceFactory) NewEventService(deps EventServiceDeps) *application.EventService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewEventService(
		deps.Events,
		idGen,
		now,
		deps.Logger,
	)
}
