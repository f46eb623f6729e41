package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/workforce-scheduler/internal/application"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

type taskServiceStub struct {
	createFn   func(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error)
	updateFn   func(ctx context.Context, params application.UpdateTaskParams) (application.Task, []application.ConflictWarning, error)
	getFn      func(ctx context.Context, taskID string) (application.Task, error)
	deleteFn   func(ctx context.Context, principal application.Principal, taskID string) error
	listFn     func(ctx context.Context, params application.ListTasksParams) ([]application.Task, []application.ConflictWarning, error)
	delayFn    func(ctx context.Context, params application.ReportDelayParams) (application.Task, error)
	completeFn func(ctx context.Context, principal application.Principal, taskID string) (application.Task, error)
	reviewFn   func(ctx context.Context, date, excludeTaskID string, proposed scheduling.Interval, requiredMinutes int, assigneeIDs []string) ([]application.AllocationAdvisory, error)
}

func (s *taskServiceStub) CreateTask(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error) {
	if s.createFn == nil {
		return application.Task{}, nil, nil
	}
	return s.createFn(ctx, params)
}

func (s *taskServiceStub) UpdateTask(ctx context.Context, params application.UpdateTaskParams) (application.Task, []application.ConflictWarning, error) {
	if s.updateFn == nil {
		return application.Task{}, nil, nil
	}
	return s.updateFn(ctx, params)
}

func (s *taskServiceStub) GetTask(ctx context.Context, taskID string) (application.Task, error) {
	if s.getFn == nil {
		return application.Task{}, nil
	}
	return s.getFn(ctx, taskID)
}

func (s *taskServiceStub) DeleteTask(ctx context.Context, principal application.Principal, taskID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, principal, taskID)
}

func (s *taskServiceStub) ListTasks(ctx context.Context, params application.ListTasksParams) ([]application.Task, []application.ConflictWarning, error) {
	if s.listFn == nil {
		return nil, nil, nil
	}
	return s.listFn(ctx, params)
}

func (s *taskServiceStub) ReportDelay(ctx context.Context, params application.ReportDelayParams) (application.Task, error) {
	if s.delayFn == nil {
		return application.Task{}, nil
	}
	return s.delayFn(ctx, params)
}

func (s *taskServiceStub) CompleteTask(ctx context.Context, principal application.Principal, taskID string) (application.Task, error) {
	if s.completeFn == nil {
		return application.Task{}, nil
	}
	return s.completeFn(ctx, principal, taskID)
}

func (s *taskServiceStub) ReviewAssignees(ctx context.Context, date, excludeTaskID string, proposed scheduling.Interval, requiredMinutes int, assigneeIDs []string) ([]application.AllocationAdvisory, error) {
	if s.reviewFn == nil {
		return nil, nil
	}
	return s.reviewFn(ctx, date, excludeTaskID, proposed, requiredMinutes, assigneeIDs)
}

type estimateServiceStub struct {
	estimateFn func(params application.EstimateParams) (application.EstimateResult, error)
}

func (s *estimateServiceStub) Estimate(params application.EstimateParams) (application.EstimateResult, error) {
	if s.estimateFn == nil {
		return application.EstimateResult{}, nil
	}
	return s.estimateFn(params)
}

type employeeServiceStub struct {
	createFn       func(ctx context.Context, params application.CreateEmployeeParams) (application.Employee, error)
	updateFn       func(ctx context.Context, params application.UpdateEmployeeParams) (application.Employee, error)
	getFn          func(ctx context.Context, employeeID string) (application.Employee, error)
	deleteFn       func(ctx context.Context, principal application.Principal, employeeID string) error
	listFn         func(ctx context.Context, principal application.Principal) ([]application.Employee, error)
	availabilityFn func(ctx context.Context, employeeID, date string) (application.AvailabilityReport, error)
}

func (s *employeeServiceStub) CreateEmployee(ctx context.Context, params application.CreateEmployeeParams) (application.Employee, error) {
	if s.createFn == nil {
		return application.Employee{}, nil
	}
	return s.createFn(ctx, params)
}

func (s *employeeServiceStub) UpdateEmployee(ctx context.Context, params application.UpdateEmployeeParams) (application.Employee, error) {
	if s.updateFn == nil {
		return application.Employee{}, nil
	}
	return s.updateFn(ctx, params)
}

func (s *employeeServiceStub) GetEmployee(ctx context.Context, employeeID string) (application.Employee, error) {
	if s.getFn == nil {
		return application.Employee{}, nil
	}
	return s.getFn(ctx, employeeID)
}

func (s *employeeServiceStub) DeleteEmployee(ctx context.Context, principal application.Principal, employeeID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, principal, employeeID)
}

func (s *employeeServiceStub) ListEmployees(ctx context.Context, principal application.Principal) ([]application.Employee, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, principal)
}

func (s *employeeServiceStub) Availability(ctx context.Context, employeeID, date string) (application.AvailabilityReport, error) {
	if s.availabilityFn == nil {
		return application.AvailabilityReport{}, nil
	}
	return s.availabilityFn(ctx, employeeID, date)
}

type eventServiceStub struct {
	createFn      func(ctx context.Context, params application.CreateEventParams) (application.RecurringEvent, error)
	updateFn      func(ctx context.Context, params application.UpdateEventParams) (application.RecurringEvent, error)
	getFn         func(ctx context.Context, eventID string) (application.RecurringEvent, error)
	deleteFn      func(ctx context.Context, principal application.Principal, eventID string) error
	listFn        func(ctx context.Context, principal application.Principal) ([]application.RecurringEvent, error)
	occurrencesFn func(ctx context.Context, date string) ([]scheduling.Occurrence, error)
	datesFn       func(ctx context.Context, eventID, rangeStart, rangeEnd string) ([]string, error)
}

func (s *eventServiceStub) CreateEvent(ctx context.Context, params application.CreateEventParams) (application.RecurringEvent, error) {
	if s.createFn == nil {
		return application.RecurringEvent{}, nil
	}
	return s.createFn(ctx, params)
}

func (s *eventServiceStub) UpdateEvent(ctx context.Context, params application.UpdateEventParams) (application.RecurringEvent, error) {
	if s.updateFn == nil {
		return application.RecurringEvent{}, nil
	}
	return s.updateFn(ctx, params)
}

func (s *eventServiceStub) GetEvent(ctx context.Context, eventID string) (application.RecurringEvent, error) {
	if s.getFn == nil {
		return application.RecurringEvent{}, nil
	}
	return s.getFn(ctx, eventID)
}

func (s *eventServiceStub) DeleteEvent(ctx context.Context, principal application.Principal, eventID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, principal, eventID)
}

func (s *eventServiceStub) ListEvents(ctx context.Context, principal application.Principal) ([]application.RecurringEvent, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, principal)
}

func (s *eventServiceStub) OccurrencesOn(ctx context.Context, date string) ([]scheduling.Occurrence, error) {
	if s.occurrencesFn == nil {
		return nil, nil
	}
	return s.occurrencesFn(ctx, date)
}

func (s *eventServiceStub) EventOccurrenceDates(ctx context.Context, eventID, rangeStart, rangeEnd string) ([]string, error) {
	if s.datesFn == nil {
		return nil, nil
	}
	return s.datesFn(ctx, eventID, rangeStart, rangeEnd)
}

type routerStubs struct {
	tasks     *taskServiceStub
	estimates *estimateServiceStub
	employees *employeeServiceStub
	events    *eventServiceStub
}

func newTestRouter(stubs routerStubs) http.Handler {
	if stubs.tasks == nil {
		stubs.tasks = &taskServiceStub{}
	}
	if stubs.estimates == nil {
		stubs.estimates = &estimateServiceStub{}
	}
	if stubs.employees == nil {
		stubs.employees = &employeeServiceStub{}
	}
	if stubs.events == nil {
		stubs.events = &eventServiceStub{}
	}
	return NewRouter(RouterConfig{
		Tasks:      NewTaskHandler(stubs.tasks, nil),
		Estimates:  NewEstimateHandler(stubs.estimates, nil),
		Employees:  NewEmployeeHandler(stubs.employees, nil),
		Events:     NewEventHandler(stubs.events, nil),
		Middleware: []func(http.Handler) http.Handler{RequireManager(nil)},
	})
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("X-Manager-Id", "mgr-1")
	req.Header.Set("X-Manager-Section", "receiving")
	req.Header.Set("X-Manager-Initials", "AB")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var payload T
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func sampleTask() application.Task {
	created := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)
	return application.Task{
		ID:              "task-1",
		Title:           "Unload trailer",
		Date:            "2026-09-07",
		Start:           scheduling.ParseTimeOfDay("09:00"),
		End:             scheduling.ParseTimeOfDay("10:40"),
		PackageCount:    150,
		TeamSize:        1,
		AssigneeIDs:     []string{"emp-a"},
		ManagerSection:  "receiving",
		ManagerInitials: "AB",
		Status:          application.TaskStatusPending,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func TestEstimateEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns the computed estimate", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{estimates: &estimateServiceStub{
			estimateFn: func(params application.EstimateParams) (application.EstimateResult, error) {
				if params.PackageCount != 150 || !params.Quick {
					t.Errorf("params = %+v", params)
				}
				return application.EstimateResult{
					TotalSeconds:    7560,
					Hours:           2,
					Minutes:         6,
					RequiredMinutes: 126,
					EndTime:         "11:06",
				}, nil
			},
		}})

		recorder := doRequest(router, http.MethodPost, "/estimates", `{"package_count":150,"mode":"quick","start_time":"09:00"}`)
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
		}

		payload := decodeBody[estimateDTO](t, recorder)
		if payload.TotalSeconds != 7560 || payload.EndTime != "11:06" {
			t.Fatalf("payload = %+v", payload)
		}
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{})
		recorder := doRequest(router, http.MethodPost, "/estimates", `{"package_count":`)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("rejects unsupported methods", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{})
		recorder := doRequest(router, http.MethodGet, "/estimates", "")
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", recorder.Code)
		}
		if allow := recorder.Header().Get("Allow"); allow != http.MethodPost {
			t.Fatalf("Allow = %q, want POST", allow)
		}
	})
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates a task and returns advisories for manual assignees", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			createFn: func(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error) {
				if params.Principal.ManagerID != "mgr-1" {
					t.Errorf("principal = %+v", params.Principal)
				}
				if params.Input.Title != "Unload trailer" {
					t.Errorf("input = %+v", params.Input)
				}
				return sampleTask(), nil, nil
			},
			reviewFn: func(ctx context.Context, date, excludeTaskID string, proposed scheduling.Interval, requiredMinutes int, assigneeIDs []string) ([]application.AllocationAdvisory, error) {
				if date != "2026-09-07" || requiredMinutes != 100 {
					t.Errorf("date = %q, requiredMinutes = %d", date, requiredMinutes)
				}
				if excludeTaskID != "task-1" {
					t.Errorf("excludeTaskID = %q, want the created task's id", excludeTaskID)
				}
				return []application.AllocationAdvisory{{EmployeeID: "emp-a", Reason: "insufficient_capacity"}}, nil
			},
		}})

		body := `{"title":"Unload trailer","date":"2026-09-07","start_time":"09:00","package_count":150,"team_size":1,"palette_good":true,"assignee_ids":["emp-a"],"allocation_mode":"manual"}`
		recorder := doRequest(router, http.MethodPost, "/tasks", body)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", recorder.Code, recorder.Body.String())
		}

		payload := decodeBody[taskResponse](t, recorder)
		if payload.Task.ID != "task-1" || payload.Task.EndTime != "10:40" {
			t.Fatalf("task = %+v", payload.Task)
		}
		if len(payload.Advisories) != 1 || payload.Advisories[0].Reason != "insufficient_capacity" {
			t.Fatalf("advisories = %+v", payload.Advisories)
		}
	})

	t.Run("maps pending conflicts to 409 with warnings", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			createFn: func(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error) {
				return application.Task{}, nil, &application.ConflictPendingError{Warnings: []application.ConflictWarning{
					{Source: "booking", ID: "task-9", Title: "Stock shelves", Start: "09:30", End: "11:00"},
				}}
			},
		}})

		body := `{"title":"Unload trailer","date":"2026-09-07","start_time":"09:00","package_count":150,"team_size":1,"assignee_ids":["emp-a"],"allocation_mode":"manual"}`
		recorder := doRequest(router, http.MethodPost, "/tasks", body)
		if recorder.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409, body %s", recorder.Code, recorder.Body.String())
		}

		payload := decodeBody[errorResponse](t, recorder)
		if payload.ErrorCode != "CONFLICT_CONFIRMATION_REQUIRED" {
			t.Fatalf("error_code = %q", payload.ErrorCode)
		}
		if len(payload.Warnings) != 1 || payload.Warnings[0].ID != "task-9" || payload.Warnings[0].StartTime != "09:30" {
			t.Fatalf("warnings = %+v", payload.Warnings)
		}
	})

	t.Run("maps validation failures to 422 with field errors", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			createFn: func(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error) {
				return application.Task{}, nil, &application.ValidationError{
					FieldErrors: map[string]string{"title": "title is required"},
				}
			},
		}})

		recorder := doRequest(router, http.MethodPost, "/tasks", `{}`)
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422, body %s", recorder.Code, recorder.Body.String())
		}

		payload := decodeBody[errorResponse](t, recorder)
		if payload.Errors["title"] != "title is required" {
			t.Fatalf("errors = %+v", payload.Errors)
		}
	})

	t.Run("maps exhausted auto allocation to 409", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			createFn: func(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error) {
				return application.Task{}, nil, application.ErrNoEmployeeAvailable
			},
		}})

		recorder := doRequest(router, http.MethodPost, "/tasks", `{"allocation_mode":"auto"}`)
		if recorder.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", recorder.Code)
		}

		payload := decodeBody[errorResponse](t, recorder)
		if payload.ErrorCode != "NO_EMPLOYEE_AVAILABLE" {
			t.Fatalf("error_code = %q", payload.ErrorCode)
		}
	})

	t.Run("skips advisories for auto allocation", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			createFn: func(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error) {
				return sampleTask(), nil, nil
			},
			reviewFn: func(ctx context.Context, date, excludeTaskID string, proposed scheduling.Interval, requiredMinutes int, assigneeIDs []string) ([]application.AllocationAdvisory, error) {
				t.Error("ReviewAssignees should not be called for auto allocation")
				return nil, nil
			},
		}})

		body := `{"title":"Unload trailer","date":"2026-09-07","start_time":"09:00","package_count":150,"team_size":1,"allocation_mode":"auto"}`
		recorder := doRequest(router, http.MethodPost, "/tasks", body)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", recorder.Code)
		}
	})
}

func TestTaskItemEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("get returns the task", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			getFn: func(ctx context.Context, taskID string) (application.Task, error) {
				if taskID != "task-1" {
					t.Errorf("taskID = %q", taskID)
				}
				return sampleTask(), nil
			},
		}})

		recorder := doRequest(router, http.MethodGet, "/tasks/task-1", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		payload := decodeBody[taskResponse](t, recorder)
		if payload.Task.StartTime != "09:00" {
			t.Fatalf("task = %+v", payload.Task)
		}
	})

	t.Run("get maps missing tasks to 404", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			getFn: func(ctx context.Context, taskID string) (application.Task, error) {
				return application.Task{}, application.ErrNotFound
			},
		}})

		recorder := doRequest(router, http.MethodGet, "/tasks/missing", "")
		if recorder.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", recorder.Code)
		}
	})

	t.Run("delete maps foreign ownership to 403", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			deleteFn: func(ctx context.Context, principal application.Principal, taskID string) error {
				return application.ErrUnauthorized
			},
		}})

		recorder := doRequest(router, http.MethodDelete, "/tasks/task-1", "")
		if recorder.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", recorder.Code)
		}
	})

	t.Run("delay forwards minutes and reason", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			delayFn: func(ctx context.Context, params application.ReportDelayParams) (application.Task, error) {
				if params.TaskID != "task-1" || params.Minutes != 45 || params.Reason != "trailer arrived late" {
					t.Errorf("params = %+v", params)
				}
				task := sampleTask()
				task.Status = application.TaskStatusDelayed
				return task, nil
			},
		}})

		recorder := doRequest(router, http.MethodPost, "/tasks/task-1/delay", `{"minutes":45,"reason":"trailer arrived late"}`)
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
		}

		payload := decodeBody[taskResponse](t, recorder)
		if payload.Task.Status != string(application.TaskStatusDelayed) {
			t.Fatalf("status = %q", payload.Task.Status)
		}
	})

	t.Run("complete marks the task completed", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			completeFn: func(ctx context.Context, principal application.Principal, taskID string) (application.Task, error) {
				task := sampleTask()
				task.Status = application.TaskStatusCompleted
				return task, nil
			},
		}})

		recorder := doRequest(router, http.MethodPost, "/tasks/task-1/complete", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		payload := decodeBody[taskResponse](t, recorder)
		if payload.Task.Status != string(application.TaskStatusCompleted) {
			t.Fatalf("status = %q", payload.Task.Status)
		}
	})
}

func TestListTasksEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("requires a date parameter", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{})
		recorder := doRequest(router, http.MethodGet, "/tasks", "")
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("returns tasks with overlap warnings", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{tasks: &taskServiceStub{
			listFn: func(ctx context.Context, params application.ListTasksParams) ([]application.Task, []application.ConflictWarning, error) {
				if params.Date != "2026-09-07" {
					t.Errorf("date = %q", params.Date)
				}
				return []application.Task{sampleTask()}, []application.ConflictWarning{
					{Source: "booking", ID: "task-2", Title: "Stock shelves", Start: "10:00", End: "11:00"},
				}, nil
			},
		}})

		recorder := doRequest(router, http.MethodGet, "/tasks?date=2026-09-07", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		payload := decodeBody[listTasksResponse](t, recorder)
		if len(payload.Tasks) != 1 || len(payload.Warnings) != 1 {
			t.Fatalf("payload = %+v", payload)
		}
	})
}

func TestEmployeeEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("create maps duplicates to 409", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{employees: &employeeServiceStub{
			createFn: func(ctx context.Context, params application.CreateEmployeeParams) (application.Employee, error) {
				return application.Employee{}, application.ErrAlreadyExists
			},
		}})

		recorder := doRequest(router, http.MethodPost, "/employees", `{"display_name":"Dana","section":"receiving"}`)
		if recorder.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", recorder.Code)
		}

		payload := decodeBody[errorResponse](t, recorder)
		if payload.ErrorCode != "ALREADY_EXISTS" {
			t.Fatalf("error_code = %q", payload.ErrorCode)
		}
	})

	t.Run("availability requires a date parameter", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{})
		recorder := doRequest(router, http.MethodGet, "/employees/emp-a/availability", "")
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("availability reports remaining capacity", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{employees: &employeeServiceStub{
			availabilityFn: func(ctx context.Context, employeeID, date string) (application.AvailabilityReport, error) {
				if employeeID != "emp-a" || date != "2026-09-07" {
					t.Errorf("employeeID = %q, date = %q", employeeID, date)
				}
				return application.AvailabilityReport{
					EmployeeID:       "emp-a",
					Date:             "2026-09-07",
					TotalMinutes:     480,
					CommittedMinutes: 165,
					RemainingMinutes: 315,
					IsAvailable:      true,
				}, nil
			},
		}})

		recorder := doRequest(router, http.MethodGet, "/employees/emp-a/availability?date=2026-09-07", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		payload := decodeBody[availabilityDTO](t, recorder)
		if payload.RemainingMinutes != 315 || !payload.IsAvailable {
			t.Fatalf("payload = %+v", payload)
		}
	})
}

func TestEventEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("occurrences require a date parameter", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{})
		recorder := doRequest(router, http.MethodGet, "/events/occurrences", "")
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("occurrences expand active events for the date", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{events: &eventServiceStub{
			occurrencesFn: func(ctx context.Context, date string) ([]scheduling.Occurrence, error) {
				if date != "2026-09-07" {
					t.Errorf("date = %q", date)
				}
				return []scheduling.Occurrence{{
					EventID: "evt-1",
					Title:   "Morning Meeting",
					Interval: scheduling.Interval{
						Start: scheduling.ParseTimeOfDay("09:00"),
						End:   scheduling.ParseTimeOfDay("10:00"),
					},
				}}, nil
			},
		}})

		recorder := doRequest(router, http.MethodGet, "/events/occurrences?date=2026-09-07", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		payload := decodeBody[occurrencesResponse](t, recorder)
		if len(payload.Occurrences) != 1 || payload.Occurrences[0].EndTime != "10:00" {
			t.Fatalf("payload = %+v", payload)
		}
	})

	t.Run("occurrence dates require both range parameters", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{})
		recorder := doRequest(router, http.MethodGet, "/events/evt-1/occurrences?from=2026-09-07", "")
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", recorder.Code)
		}
	})

	t.Run("occurrence dates list matching dates", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{events: &eventServiceStub{
			datesFn: func(ctx context.Context, eventID, rangeStart, rangeEnd string) ([]string, error) {
				if eventID != "evt-1" || rangeStart != "2026-09-07" || rangeEnd != "2026-09-13" {
					t.Errorf("eventID = %q, from = %q, to = %q", eventID, rangeStart, rangeEnd)
				}
				return []string{"2026-09-07", "2026-09-09", "2026-09-11"}, nil
			},
		}})

		recorder := doRequest(router, http.MethodGet, "/events/evt-1/occurrences?from=2026-09-07&to=2026-09-13", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}

		payload := decodeBody[occurrenceDatesResponse](t, recorder)
		if len(payload.Dates) != 3 || payload.Dates[0] != "2026-09-07" {
			t.Fatalf("payload = %+v", payload)
		}
	})

	t.Run("create returns the normalized event", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(routerStubs{events: &eventServiceStub{
			createFn: func(ctx context.Context, params application.CreateEventParams) (application.RecurringEvent, error) {
				if params.Input.Recurrence != "weekly" || len(params.Input.Weekdays) != 1 {
					t.Errorf("input = %+v", params.Input)
				}
				created := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
				return application.RecurringEvent{
					ID:              "evt-1",
					Title:           params.Input.Title,
					Start:           scheduling.ParseTimeOfDay(params.Input.StartTime),
					DurationMinutes: params.Input.DurationMinutes,
					Recurrence:      params.Input.Recurrence,
					Weekdays:        params.Input.Weekdays,
					StartDate:       params.Input.StartDate,
					IsActive:        true,
					CreatedAt:       created,
					UpdatedAt:       created,
				}, nil
			},
		}})

		body := `{"title":"Team huddle","start_time":"08:30","duration_minutes":15,"recurrence_type":"weekly","weekdays":[1],"start_date":"2026-09-01"}`
		recorder := doRequest(router, http.MethodPost, "/events", body)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", recorder.Code, recorder.Body.String())
		}

		payload := decodeBody[eventDTO](t, recorder)
		if payload.ID != "evt-1" || payload.StartTime != "08:30" || !payload.IsActive {
			t.Fatalf("payload = %+v", payload)
		}
	})
}

func TestRouterUnknownPaths(t *testing.T) {
	t.Parallel()

	router := newTestRouter(routerStubs{})
	recorder := doRequest(router, http.MethodGet, "/unknown", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}
