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

type eventService interface {
	CreateEvent(ctx context.Context, params application.CreateEventParams) (application.RecurringEvent, error)
	UpdateEvent(ctx context.Context, params application.UpdateEventParams) (application.RecurringEvent, error)
	GetEvent(ctx context.Context, eventID string) (application.RecurringEvent, error)
	DeleteEvent(ctx context.Context, principal application.Principal, eventID string) error
	ListEvents(ctx context.Context, principal application.Principal) ([]application.RecurringEvent, error)
	OccurrencesOn(ctx context.Context, date string) ([]scheduling.Occurrence, error)
	EventOccurrenceDates(ctx context.Context, eventID, rangeStart, rangeEnd string) ([]string, error)
}

type EventHandler struct {
	service   eventService
	responder responder
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{service: service, responder: newResponder(logger)}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	event, err := h.service.CreateEvent(r.Context(), application.CreateEventParams{
		Principal: principal,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEventDTO(event))
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	event, err := h.service.UpdateEvent(r.Context(), application.UpdateEventParams{
		Principal: principal,
		EventID:   eventID,
		Input:     req.toInput(),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventDTO(event))
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventDTO(event))
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteEvent(r.Context(), principal, eventID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	events, err := h.service.ListEvents(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{
		Events: toEventDTOs(events),
	})
}

func (h *EventHandler) Occurrences(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	occurrences, err := h.service.OccurrencesOn(r.Context(), date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, occurrencesResponse{
		Date:        date,
		Occurrences: toOccurrenceDTOs(occurrences),
	})
}

func (h *EventHandler) OccurrenceDates(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingRangeParams)
		return
	}

	dates, err := h.service.EventOccurrenceDates(r.Context(), eventID, from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, occurrenceDatesResponse{
		EventID: eventID,
		Dates:   dates,
	})
}

type eventRequest struct {
	Title           string  `json:"title"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	RecurrenceType  string  `json:"recurrence_type"`
	Weekdays        []int   `json:"weekdays"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	IsActive        *bool   `json:"is_active"`
}

func (r eventRequest) toInput() application.EventInput {
	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, day := range r.Weekdays {
		weekdays = append(weekdays, time.Weekday(day))
	}
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return application.EventInput{
		Title:           strings.TrimSpace(r.Title),
		StartTime:       strings.TrimSpace(r.StartTime),
		DurationMinutes: r.DurationMinutes,
		Recurrence:      strings.TrimSpace(r.RecurrenceType),
		Weekdays:        weekdays,
		StartDate:       strings.TrimSpace(r.StartDate),
		EndDate:         r.EndDate,
		IsActive:        active,
	}
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	RecurrenceType  string  `json:"recurrence_type"`
	Weekdays        []int   `json:"weekdays,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date,omitempty"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toEventDTO(event application.RecurringEvent) eventDTO {
	weekdays := make([]int, 0, len(event.Weekdays))
	for _, day := range event.Weekdays {
		weekdays = append(weekdays, int(day))
	}
	if len(weekdays) == 0 {
		weekdays = nil
	}
	return eventDTO{
		ID:              event.ID,
		Title:           event.Title,
		StartTime:       event.Start.String(),
		DurationMinutes: event.DurationMinutes,
		RecurrenceType:  event.Recurrence,
		Weekdays:        weekdays,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		IsActive:        event.IsActive,
		CreatedAt:       event.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       event.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toEventDTOs(events []application.RecurringEvent) []eventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}

type occurrencesResponse struct {
	Date        string          `json:"date"`
	Occurrences []occurrenceDTO `json:"occurrences"`
}

type occurrenceDTO struct {
	EventID   string `json:"event_id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toOccurrenceDTOs(occurrences []scheduling.Occurrence) []occurrenceDTO {
	if len(occurrences) == 0 {
		return nil
	}
	out := make([]occurrenceDTO, 0, len(occurrences))
	for _, occurrence := range occurrences {
		out = append(out, occurrenceDTO{
			EventID:   occurrence.EventID,
			Title:     occurrence.Title,
			StartTime: occurrence.Interval.Start.String(),
			EndTime:   occurrence.Interval.End.String(),
		})
	}
	return out
}

type occurrenceDatesResponse struct {
	EventID string   `json:"event_id"`
	Dates   []string `json:"dates"`
}
