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
	"github.com/example/workforce-scheduler/internal/recurrence"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

// EventRepository captures the persistence operations needed by the service.
type EventRepository interface {
	CreateEvent(ctx context.Context, event RecurringEvent) (RecurringEvent, error)
	GetEvent(ctx context.Context, id string) (RecurringEvent, error)
	UpdateEvent(ctx context.Context, event RecurringEvent) (RecurringEvent, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]RecurringEvent, error)
	ListActiveEvents(ctx context.Context) ([]RecurringEvent, error)
}

// EventService orchestrates validation, persistence, and occurrence expansion
// for recurring events.
type EventService struct {
	events      EventRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEventService wires dependencies for recurring event operations.
func NewEventService(events EventRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EventService{
		events:      events,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// CreateEvent validates input and persists a new recurring event.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (event RecurringEvent, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateEvent",
		"manager_id", params.Principal.ManagerID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event created")
	}()

	vErr := validateEventInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	createdAt := s.now()
	event = RecurringEvent{
		ID:              s.idGenerator(),
		Title:           strings.TrimSpace(params.Input.Title),
		Start:           scheduling.ParseTimeOfDay(params.Input.StartTime),
		DurationMinutes: params.Input.DurationMinutes,
		Recurrence:      strings.ToLower(strings.TrimSpace(params.Input.Recurrence)),
		Weekdays:        sortWeekdays(params.Input.Weekdays),
		StartDate:       params.Input.StartDate,
		EndDate:         params.Input.EndDate,
		IsActive:        params.Input.IsActive,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}

	if s.events == nil {
		return
	}

	persisted, perr := s.events.CreateEvent(ctx, event)
	if perr != nil {
		err = mapEventRepoError(perr)
		event = RecurringEvent{}
		return
	}

	event = persisted
	return
}

// UpdateEvent validates input and updates an existing recurring event.
func (s *EventService) UpdateEvent(ctx context.Context, params UpdateEventParams) (event RecurringEvent, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEvent",
		"manager_id", params.Principal.ManagerID,
		"event_id", params.EventID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event updated")
	}()

	existing, gerr := s.events.GetEvent(ctx, params.EventID)
	if gerr != nil {
		err = mapEventRepoError(gerr)
		return
	}

	vErr := validateEventInput(params.Input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Title = strings.TrimSpace(params.Input.Title)
	updated.Start = scheduling.ParseTimeOfDay(params.Input.StartTime)
	updated.DurationMinutes = params.Input.DurationMinutes
	updated.Recurrence = strings.ToLower(strings.TrimSpace(params.Input.Recurrence))
	updated.Weekdays = sortWeekdays(params.Input.Weekdays)
	updated.StartDate = params.Input.StartDate
	updated.EndDate = params.Input.EndDate
	updated.IsActive = params.Input.IsActive
	updated.UpdatedAt = s.now()

	event, err = s.events.UpdateEvent(ctx, updated)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	return
}

// GetEvent fetches a single recurring event by id.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (RecurringEvent, error) {
	if s == nil {
		return RecurringEvent{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return RecurringEvent{}, fmt.Errorf("event repository not configured")
	}
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return RecurringEvent{}, mapEventRepoError(err)
	}
	return event, nil
}

// DeleteEvent removes a recurring event.
func (s *EventService) DeleteEvent(ctx context.Context, principal Principal, eventID string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return fmt.Errorf("event repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteEvent",
		"manager_id", principal.ManagerID,
		"event_id", eventID,
	)

	if err := s.events.DeleteEvent(ctx, eventID); err != nil {
		err = mapEventRepoError(err)
		logger.ErrorContext(ctx, "failed to delete event", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "event deleted")
	return nil
}

// ListEvents returns all recurring events ordered by title.
func (s *EventService) ListEvents(ctx context.Context, principal Principal) (events []RecurringEvent, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListEvents",
		"manager_id", principal.ManagerID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list events", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(events)).InfoContext(ctx, "events listed")
	}()

	raw, lerr := s.events.ListEvents(ctx)
	if lerr != nil {
		err = lerr
		return
	}

	events = make([]RecurringEvent, len(raw))
	copy(events, raw)
	sort.Slice(events, func(i, j int) bool {
		if strings.EqualFold(events[i].Title, events[j].Title) {
			return events[i].ID < events[j].ID
		}
		return strings.ToLower(events[i].Title) < strings.ToLower(events[j].Title)
	})

	return
}

// OccurrencesOn expands every active event onto the given date, ordered by
// start time.
func (s *EventService) OccurrencesOn(ctx context.Context, date string) ([]scheduling.Occurrence, error) {
	if s == nil || s.events == nil {
		return nil, nil
	}

	day, err := scheduling.ParseDate(date)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("date", "date must be formatted as YYYY-MM-DD")
		return nil, vErr
	}

	events, err := s.events.ListActiveEvents(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	occurrences := make([]scheduling.Occurrence, 0)
	for _, event := range events {
		rule, rerr := toRecurrenceRule(event)
		if rerr != nil {
			s.loggerWith(ctx, "OccurrencesOn", "event_id", event.ID).
				WarnContext(ctx, "skipping event with invalid recurrence", "error", rerr)
			continue
		}
		applies, aerr := recurrence.AppliesOn(rule, day)
		if aerr != nil {
			return nil, aerr
		}
		if !applies {
			continue
		}
		occurrences = append(occurrences, toOccurrence(event))
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		if occurrences[i].Interval.Start != occurrences[j].Interval.Start {
			return occurrences[i].Interval.Start < occurrences[j].Interval.Start
		}
		return occurrences[i].EventID < occurrences[j].EventID
	})

	if len(occurrences) == 0 {
		return nil, nil
	}
	return occurrences, nil
}

// EventOccurrenceDates expands one event into the concrete dates it occurs on
// within [rangeStart, rangeEnd].
func (s *EventService) EventOccurrenceDates(ctx context.Context, eventID, rangeStart, rangeEnd string) ([]string, error) {
	if s == nil || s.events == nil {
		return nil, nil
	}

	vErr := &ValidationError{}
	start, serr := scheduling.ParseDate(rangeStart)
	if serr != nil {
		vErr.add("from", "date must be formatted as YYYY-MM-DD")
	}
	end, eerr := scheduling.ParseDate(rangeEnd)
	if eerr != nil {
		vErr.add("to", "date must be formatted as YYYY-MM-DD")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	rule, err := toRecurrenceRule(event)
	if err != nil {
		return nil, err
	}

	dates, err := recurrence.DatesInRange(rule, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(dates))
	for _, date := range dates {
		out = append(out, scheduling.FormatDate(date))
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func toRecurrenceRule(event RecurringEvent) (recurrence.Rule, error) {
	frequency, err := recurrence.ParseFrequency(event.Recurrence)
	if err != nil {
		return recurrence.Rule{}, err
	}

	startsOn, err := scheduling.ParseDate(event.StartDate)
	if err != nil {
		return recurrence.Rule{}, err
	}

	var endsOn *time.Time
	if event.EndDate != nil {
		parsed, perr := scheduling.ParseDate(*event.EndDate)
		if perr != nil {
			return recurrence.Rule{}, perr
		}
		endsOn = &parsed
	}

	return recurrence.Rule{
		ID:        event.ID,
		EventID:   event.ID,
		Frequency: frequency,
		Weekdays:  event.Weekdays,
		StartsOn:  startsOn,
		EndsOn:    endsOn,
	}, nil
}

func toOccurrence(event RecurringEvent) scheduling.Occurrence {
	end := event.Start.Add(event.DurationMinutes)
	if end > scheduling.EndOfDay {
		end = scheduling.EndOfDay
	}
	return scheduling.Occurrence{
		EventID:  event.ID,
		Title:    event.Title,
		Interval: scheduling.Interval{Start: event.Start, End: end},
	}
}

func validateEventInput(input EventInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if !scheduling.IsClockString(input.StartTime) {
		vErr.add("start_time", "start time must be formatted as HH:MM")
	}
	if input.DurationMinutes <= 0 {
		vErr.add("duration_minutes", "duration minutes must be positive")
	}
	if _, err := recurrence.ParseFrequency(input.Recurrence); err != nil {
		vErr.add("recurrence_type", "recurrence type must be daily, weekly, weekdays, or custom")
	}
	if _, err := scheduling.ParseDate(input.StartDate); err != nil {
		vErr.add("start_date", "date must be formatted as YYYY-MM-DD")
	}
	if input.EndDate != nil {
		if _, err := scheduling.ParseDate(*input.EndDate); err != nil {
			vErr.add("end_date", "date must be formatted as YYYY-MM-DD")
		} else if input.StartDate > *input.EndDate {
			vErr.add("end_date", "end date must not precede start date")
		}
	}
	for _, day := range input.Weekdays {
		if day < time.Sunday || day > time.Saturday {
			vErr.add("weekdays", "weekdays must be between 0 and 6")
			break
		}
	}

	return vErr
}

func sortWeekdays(weekdays []time.Weekday) []time.Weekday {
	if len(weekdays) == 0 {
		return nil
	}
	seen := make(map[time.Weekday]struct{}, len(weekdays))
	out := make([]time.Weekday, 0, len(weekdays))
	for _, day := range weekdays {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func mapEventRepoError(err error) error {
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
		vErr.add("duration_minutes", "duration minutes must be positive")
		return vErr
	}
	return err
}
