package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/workforce-scheduler/internal/persistence"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

// EmployeeRepository captures the persistence operations needed by the service.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	UpdateEmployee(ctx context.Context, employee Employee) (Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// EmployeeTaskSource exposes the tasks assigned to one employee on a date.
type EmployeeTaskSource interface {
	ListTasksForEmployee(ctx context.Context, employeeID, date string) ([]Task, error)
}

// EmployeeBreakSource exposes the breaks scheduled for one employee on a date.
type EmployeeBreakSource interface {
	ListBreaksForEmployee(ctx context.Context, employeeID, date string) ([]Break, error)
}

// EmployeeService orchestrates validation and persistence for employee
// operations, and derives per-day availability.
type EmployeeService struct {
	employees    EmployeeRepository
	tasks        EmployeeTaskSource
	breaks       EmployeeBreakSource
	shiftMinutes int
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewEmployeeService wires dependencies for employee operations.
func NewEmployeeService(employees EmployeeRepository, tasks EmployeeTaskSource, breaks EmployeeBreakSource, shiftMinutes int, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EmployeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if shiftMinutes <= 0 {
		shiftMinutes = 480
	}
	return &EmployeeService{
		employees:    employees,
		tasks:        tasks,
		breaks:       breaks,
		shiftMinutes: shiftMinutes,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *EmployeeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EmployeeService", operation, attrs...)
}

// CreateEmployee validates input and persists a new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, params CreateEmployeeParams) (employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateEmployee",
		"manager_id", params.Principal.ManagerID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("employee_id", employee.ID).InfoContext(ctx, "employee created")
	}()

	vErr := validateEmployeeInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	employee = Employee{
		ID:              s.idGenerator(),
		DisplayName:     strings.TrimSpace(params.Input.DisplayName),
		Section:         strings.TrimSpace(params.Input.Section),
		Shift:           strings.TrimSpace(params.Input.Shift),
		CapacityMinutes: params.Input.CapacityMinutes,
		CreatedAt:       s.now(),
	}
	employee.UpdatedAt = employee.CreatedAt

	if s.employees == nil {
		return
	}

	persisted, perr := s.employees.CreateEmployee(ctx, employee)
	if perr != nil {
		err = mapEmployeeRepoError(perr)
		employee = Employee{}
		return
	}

	employee = persisted
	return
}

// UpdateEmployee validates input and updates an existing employee.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, params UpdateEmployeeParams) (employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		err = fmt.Errorf("employee repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEmployee",
		"manager_id", params.Principal.ManagerID,
		"employee_id", params.EmployeeID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "employee updated")
	}()

	existing, gerr := s.employees.GetEmployee(ctx, params.EmployeeID)
	if gerr != nil {
		err = mapEmployeeRepoError(gerr)
		return
	}

	vErr := validateEmployeeInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.DisplayName = strings.TrimSpace(params.Input.DisplayName)
	updated.Section = strings.TrimSpace(params.Input.Section)
	updated.Shift = strings.TrimSpace(params.Input.Shift)
	updated.CapacityMinutes = params.Input.CapacityMinutes
	updated.UpdatedAt = s.now()

	employee, err = s.employees.UpdateEmployee(ctx, updated)
	if err != nil {
		err = mapEmployeeRepoError(err)
		return
	}

	return
}

// GetEmployee fetches a single employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	if s == nil {
		return Employee{}, fmt.Errorf("EmployeeService is nil")
	}
	if s.employees == nil {
		return Employee{}, fmt.Errorf("employee repository not configured")
	}
	employee, err := s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return Employee{}, mapEmployeeRepoError(err)
	}
	return employee, nil
}

// DeleteEmployee removes an employee.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, principal Principal, employeeID string) error {
	if s == nil {
		return fmt.Errorf("EmployeeService is nil")
	}
	if s.employees == nil {
		return fmt.Errorf("employee repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteEmployee",
		"manager_id", principal.ManagerID,
		"employee_id", employeeID,
	)

	if err := s.employees.DeleteEmployee(ctx, employeeID); err != nil {
		err = mapEmployeeRepoError(err)
		logger.ErrorContext(ctx, "failed to delete employee", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "employee deleted")
	return nil
}

// ListEmployees returns all employees ordered by display name.
func (s *EmployeeService) ListEmployees(ctx context.Context, principal Principal) (employees []Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListEmployees",
		"manager_id", principal.ManagerID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list employees", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(employees)).InfoContext(ctx, "employees listed")
	}()

	raw, lerr := s.employees.ListEmployees(ctx)
	if lerr != nil {
		err = lerr
		return
	}

	employees = make([]Employee, len(raw))
	copy(employees, raw)
	sort.Slice(employees, func(i, j int) bool {
		if strings.EqualFold(employees[i].DisplayName, employees[j].DisplayName) {
			return employees[i].ID < employees[j].ID
		}
		return strings.ToLower(employees[i].DisplayName) < strings.ToLower(employees[j].DisplayName)
	})

	return
}

// MissingEmployeeIDs reports which of the given ids have no employee record.
func (s *EmployeeService) MissingEmployeeIDs(ctx context.Context, ids []string) ([]string, error) {
	if s == nil || s.employees == nil || len(ids) == 0 {
		return nil, nil
	}

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(employees))
	for _, employee := range employees {
		known[employee.ID] = struct{}{}
	}

	missing := make([]string, 0)
	for _, id := range uniqueStrings(ids) {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	if len(missing) == 0 {
		return nil, nil
	}
	return missing, nil
}

// Availability derives an employee's remaining work minutes on a date from
// their shift capacity minus assigned task and break minutes.
func (s *EmployeeService) Availability(ctx context.Context, employeeID, date string) (report AvailabilityReport, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}
	if s.employees == nil {
		err = fmt.Errorf("employee repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Availability",
		"employee_id", employeeID,
		"date", date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to derive availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("remaining_minutes", report.RemainingMinutes).InfoContext(ctx, "availability derived")
	}()

	if _, derr := scheduling.ParseDate(date); derr != nil {
		vErr := &ValidationError{}
		vErr.add("date", "date must be formatted as YYYY-MM-DD")
		err = vErr
		return
	}

	employee, gerr := s.employees.GetEmployee(ctx, employeeID)
	if gerr != nil {
		err = mapEmployeeRepoError(gerr)
		return
	}

	total := employee.CapacityMinutes
	if total <= 0 {
		total = s.shiftMinutes
	}

	used := 0
	if s.tasks != nil {
		tasks, terr := s.tasks.ListTasksForEmployee(ctx, employeeID, date)
		if terr != nil && !errors.Is(terr, persistence.ErrNotFound) {
			err = terr
			return
		}
		for _, task := range tasks {
			used += scheduling.Interval{Start: task.Start, End: task.End}.Minutes()
		}
	}
	if s.breaks != nil {
		breaks, berr := s.breaks.ListBreaksForEmployee(ctx, employeeID, date)
		if berr != nil && !errors.Is(berr, persistence.ErrNotFound) {
			err = berr
			return
		}
		for _, rest := range breaks {
			used += scheduling.Interval{Start: rest.Start, End: rest.End}.Minutes()
		}
	}

	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}

	report = AvailabilityReport{
		EmployeeID:       employeeID,
		Date:             date,
		TotalMinutes:     total,
		CommittedMinutes: used,
		RemainingMinutes: remaining,
		IsAvailable:      remaining > 0,
	}
	return
}

func validateEmployeeInput(input EmployeeInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.DisplayName) == "" {
		vErr.add("display_name", "display name is required")
	}
	if strings.TrimSpace(input.Section) == "" {
		vErr.add("section", "section is required")
	}
	if input.CapacityMinutes < 0 {
		vErr.add("capacity_minutes", "capacity minutes must not be negative")
	}

	return vErr
}

func mapEmployeeRepoError(err error) error {
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
		vErr.add("capacity_minutes", "capacity minutes must not be negative")
		return vErr
	}
	return err
}
