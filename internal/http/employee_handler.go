package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/workforce-scheduler/internal/application"
)

type employeeService interface {
	CreateEmployee(ctx context.Context, params application.CreateEmployeeParams) (application.Employee, error)
	UpdateEmployee(ctx context.Context, params application.UpdateEmployeeParams) (application.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (application.Employee, error)
	DeleteEmployee(ctx context.Context, principal application.Principal, employeeID string) error
	ListEmployees(ctx context.Context, principal application.Principal) ([]application.Employee, error)
	Availability(ctx context.Context, employeeID, date string) (application.AvailabilityReport, error)
}

type EmployeeHandler struct {
	service   employeeService
	responder responder
}

func NewEmployeeHandler(service employeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, responder: newResponder(logger)}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	employee, err := h.service.CreateEmployee(r.Context(), application.CreateEmployeeParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEmployeeDTO(employee))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	employee, err := h.service.UpdateEmployee(r.Context(), application.UpdateEmployeeParams{
		Principal:  principal,
		EmployeeID: employeeID,
		Input:      req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEmployeeDTO(employee))
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	employee, err := h.service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEmployeeDTO(employee))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteEmployee(r.Context(), principal, employeeID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	employees, err := h.service.ListEmployees(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEmployeesResponse{
		Employees: toEmployeeDTOs(employees),
	})
}

func (h *EmployeeHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	report, err := h.service.Availability(r.Context(), employeeID, date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAvailabilityDTO(report))
}

type employeeRequest struct {
	DisplayName     string `json:"display_name"`
	Section         string `json:"section"`
	Shift           string `json:"shift"`
	CapacityMinutes int    `json:"capacity_minutes"`
}

func (r employeeRequest) toInput() application.EmployeeInput {
	return application.EmployeeInput{
		DisplayName:     strings.TrimSpace(r.DisplayName),
		Section:         strings.TrimSpace(r.Section),
		Shift:           strings.TrimSpace(r.Shift),
		CapacityMinutes: r.CapacityMinutes,
	}
}

type listEmployeesResponse struct {
	Employees []employeeDTO `json:"employees"`
}

type employeeDTO struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Section         string `json:"section"`
	Shift           string `json:"shift,omitempty"`
	CapacityMinutes int    `json:"capacity_minutes"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toEmployeeDTO(employee application.Employee) employeeDTO {
	return employeeDTO{
		ID:              employee.ID,
		DisplayName:     employee.DisplayName,
		Section:         employee.Section,
		Shift:           employee.Shift,
		CapacityMinutes: employee.CapacityMinutes,
		CreatedAt:       employee.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       employee.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toEmployeeDTOs(employees []application.Employee) []employeeDTO {
	if len(employees) == 0 {
		return nil
	}
	out := make([]employeeDTO, 0, len(employees))
	for _, employee := range employees {
		out = append(out, toEmployeeDTO(employee))
	}
	return out
}

type availabilityDTO struct {
	EmployeeID       string `json:"employee_id"`
	Date             string `json:"date"`
	TotalMinutes     int    `json:"total_minutes"`
	CommittedMinutes int    `json:"committed_minutes"`
	RemainingMinutes int    `json:"remaining_minutes"`
	IsAvailable      bool   `json:"is_available"`
}

func toAvailabilityDTO(report application.AvailabilityReport) availabilityDTO {
	return availabilityDTO{
		EmployeeID:       report.EmployeeID,
		Date:             report.Date,
		TotalMinutes:     report.TotalMinutes,
		CommittedMinutes: report.CommittedMinutes,
		RemainingMinutes: report.RemainingMinutes,
		IsAvailable:      report.IsAvailable,
	}
}
