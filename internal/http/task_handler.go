package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/workforce-scheduler/internal/application"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

type taskService interface {
	CreateTask(ctx context.Context, params application.CreateTaskParams) (application.Task, []application.ConflictWarning, error)
	UpdateTask(ctx context.Context, params application.UpdateTaskParams) (application.Task, []application.ConflictWarning, error)
	GetTask(ctx context.Context, taskID string) (application.Task, error)
	DeleteTask(ctx context.Context, principal application.Principal, taskID string) error
	ListTasks(ctx context.Context, params application.ListTasksParams) ([]application.Task, []application.ConflictWarning, error)
	ReportDelay(ctx context.Context, params application.ReportDelayParams) (application.Task, error)
	CompleteTask(ctx context.Context, principal application.Principal, taskID string) (application.Task, error)
	ReviewAssignees(ctx context.Context, date, excludeTaskID string, proposed scheduling.Interval, requiredMinutes int, assigneeIDs []string) ([]application.AllocationAdvisory, error)
}

type TaskHandler struct {
	service   taskService
	responder responder
	logger    *slog.Logger
}

func NewTaskHandler(service taskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{service: service, responder: newResponder(logger), logger: defaultLogger(logger)}
}

func (h *TaskHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "TaskHandler", operation, attrs...)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	task, warnings, err := h.service.CreateTask(r.Context(), application.CreateTaskParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	advisories := h.reviewAllocation(r.Context(), task, req)
	h.renderTask(r.Context(), w, task, warnings, advisories, http.StatusCreated)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := TaskIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTaskID)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	task, warnings, err := h.service.UpdateTask(r.Context(), application.UpdateTaskParams{
		Principal: principal,
		TaskID:    taskID,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	advisories := h.reviewAllocation(r.Context(), task, req)
	h.renderTask(r.Context(), w, task, warnings, advisories, http.StatusOK)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := TaskIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTaskID)
		return
	}

	task, err := h.service.GetTask(r.Context(), taskID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.renderTask(r.Context(), w, task, nil, nil, http.StatusOK)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := TaskIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTaskID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteTask(r.Context(), principal, taskID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	tasks, warnings, err := h.service.ListTasks(r.Context(), application.ListTasksParams{
		Principal: principal,
		Date:      date,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	response := listTasksResponse{
		Tasks:    toTaskDTOs(tasks),
		Warnings: toWarningDTOs(warnings),
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *TaskHandler) Delay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := TaskIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTaskID)
		return
	}

	var req delayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	task, err := h.service.ReportDelay(r.Context(), application.ReportDelayParams{
		Principal: principal,
		TaskID:    taskID,
		Minutes:   req.Minutes,
		Reason:    strings.TrimSpace(req.Reason),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.renderTask(r.Context(), w, task, nil, nil, http.StatusOK)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := TaskIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTaskID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	task, err := h.service.CompleteTask(r.Context(), principal, taskID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.renderTask(r.Context(), w, task, nil, nil, http.StatusOK)
}

// reviewAllocation collects non-blocking advisories for manually selected
// assignees. Failures here never fail the request.
func (h *TaskHandler) reviewAllocation(ctx context.Context, task application.Task, req taskRequest) []allocationAdvisoryDTO {
	if req.AllocationMode == string(application.AllocationAuto) || len(task.AssigneeIDs) == 0 {
		return nil
	}

	proposed := scheduling.Interval{Start: task.Start, End: task.End}
	advisories, err := h.service.ReviewAssignees(ctx, task.Date, task.ID, proposed, proposed.Minutes(), task.AssigneeIDs)
	if err != nil {
		h.log(ctx, "reviewAllocation", "task_id", task.ID).WarnContext(ctx, "failed to review assignees", "error", err)
		return nil
	}
	return toAdvisoryDTOs(advisories)
}

func (h *TaskHandler) renderTask(ctx context.Context, w http.ResponseWriter, task application.Task, warnings []application.ConflictWarning, advisories []allocationAdvisoryDTO, status int) {
	payload := taskResponse{
		Task:       toTaskDTO(task),
		Warnings:   toWarningDTOs(warnings),
		Advisories: advisories,
	}
	h.responder.writeJSON(ctx, w, status, payload)
}

type taskRequest struct {
	Title            string   `json:"title"`
	Date             string   `json:"date"`
	StartTime        string   `json:"start_time"`
	PackageCount     int      `json:"package_count"`
	TeamSize         int      `json:"team_size"`
	PaletteGood      bool     `json:"palette_good"`
	AssigneeIDs      []string `json:"assignee_ids"`
	AllocationMode   string   `json:"allocation_mode"`
	ConfirmConflicts bool     `json:"confirm_conflicts"`
}

func (r taskRequest) toInput() application.TaskInput {
	return application.TaskInput{
		Title:            strings.TrimSpace(r.Title),
		Date:             strings.TrimSpace(r.Date),
		StartTime:        strings.TrimSpace(r.StartTime),
		PackageCount:     r.PackageCount,
		TeamSize:         r.TeamSize,
		PaletteGood:      r.PaletteGood,
		AssigneeIDs:      append([]string(nil), r.AssigneeIDs...),
		AllocationMode:   application.AllocationMode(strings.TrimSpace(r.AllocationMode)),
		ConfirmConflicts: r.ConfirmConflicts,
	}
}

type delayRequest struct {
	Minutes int    `json:"minutes"`
	Reason  string `json:"reason"`
}

type taskResponse struct {
	Task       taskDTO                 `json:"task"`
	Warnings   []conflictWarningDTO    `json:"warnings,omitempty"`
	Advisories []allocationAdvisoryDTO `json:"advisories,omitempty"`
}

type listTasksResponse struct {
	Tasks    []taskDTO            `json:"tasks"`
	Warnings []conflictWarningDTO `json:"warnings,omitempty"`
}

type taskDTO struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	PackageCount    int      `json:"package_count"`
	TeamSize        int      `json:"team_size"`
	AssigneeIDs     []string `json:"assignee_ids"`
	ManagerSection  string   `json:"manager_section,omitempty"`
	ManagerInitials string   `json:"manager_initials,omitempty"`
	Status          string   `json:"status"`
	DelayMinutes    *int     `json:"delay_minutes,omitempty"`
	DelayReason     *string  `json:"delay_reason,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func toTaskDTO(task application.Task) taskDTO {
	return taskDTO{
		ID:              task.ID,
		Title:           task.Title,
		Date:            task.Date,
		StartTime:       task.Start.String(),
		EndTime:         task.End.String(),
		PackageCount:    task.PackageCount,
		TeamSize:        task.TeamSize,
		AssigneeIDs:     append([]string(nil), task.AssigneeIDs...),
		ManagerSection:  task.ManagerSection,
		ManagerInitials: task.ManagerInitials,
		Status:          string(task.Status),
		DelayMinutes:    task.DelayMinutes,
		DelayReason:     task.DelayReason,
		CreatedAt:       task.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       task.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toTaskDTOs(tasks []application.Task) []taskDTO {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]taskDTO, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskDTO(task))
	}
	return out
}

type conflictWarningDTO struct {
	Source    string `json:"source"`
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toWarningDTOs(warnings []application.ConflictWarning) []conflictWarningDTO {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]conflictWarningDTO, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, conflictWarningDTO{
			Source:    warning.Source,
			ID:        warning.ID,
			Title:     warning.Title,
			StartTime: warning.Start,
			EndTime:   warning.End,
		})
	}
	return out
}

type allocationAdvisoryDTO struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

func toAdvisoryDTOs(advisories []application.AllocationAdvisory) []allocationAdvisoryDTO {
	if len(advisories) == 0 {
		return nil
	}
	out := make([]allocationAdvisoryDTO, 0, len(advisories))
	for _, advisory := range advisories {
		out = append(out, allocationAdvisoryDTO{
			EmployeeID: advisory.EmployeeID,
			Reason:     advisory.Reason,
		})
	}
	return out
}
