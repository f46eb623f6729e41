package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/workforce-scheduler/internal/persistence"
)

type eventRepoStub struct {
	createErr error
	created   RecurringEvent

	getEvent RecurringEvent
	getErr   error

	updateErr error
	updated   RecurringEvent

	deleteErr error
	deletedID string

	list       []RecurringEvent
	activeList []RecurringEvent
	listErr    error
}

func (r *eventRepoStub) CreateEvent(ctx context.Context, event RecurringEvent) (RecurringEvent, error) {
	if r.createErr != nil {
		return RecurringEvent{}, r.createErr
	}
	r.created = event
	return event, nil
}

func (r *eventRepoStub) GetEvent(ctx context.Context, id string) (RecurringEvent, error) {
	if r.getErr != nil {
		return RecurringEvent{}, r.getErr
	}
	if r.getEvent.ID == "" {
		return RecurringEvent{}, persistence.ErrNotFound
	}
	return r.getEvent, nil
}

func (r *eventRepoStub) UpdateEvent(ctx context.Context, event RecurringEvent) (RecurringEvent, error) {
	if r.updateErr != nil {
		return RecurringEvent{}, r.updateErr
	}
	r.updated = event
	return event, nil
}

func (r *eventRepoStub) DeleteEvent(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
}

func (r *eventRepoStub) ListEvents(ctx context.Context) ([]RecurringEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list, nil
}

func (r *eventRepoStub) ListActiveEvents(ctx context.Context) ([]RecurringEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.activeList, nil
}

func newEventService(repo *eventRepoStub) *EventService {
	return NewEventService(repo, sequentialIDs("evt-1"), testNow, nil)
}

func validEventInput() EventInput {
	return EventInput{
		Title:           "Inventory count",
		StartTime:       "14:00",
		DurationMinutes: 60,
		Recurrence:      "weekly",
		Weekdays:        []time.Weekday{time.Monday},
		StartDate:       "2026-09-01",
		IsActive:        true,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("validates required attributes", func(t *testing.T) {
		svc := newEventService(&eventRepoStub{})

		endDate := "yesterday"
		_, err := svc.CreateEvent(context.Background(), CreateEventParams{
			Input: EventInput{
				Title:           "",
				StartTime:       "2pm",
				DurationMinutes: 0,
				Recurrence:      "fortnightly",
				StartDate:       "01-09-2026",
				EndDate:         &endDate,
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"title", "start_time", "duration_minutes", "recurrence_type", "start_date", "end_date"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		svc := newEventService(&eventRepoStub{})

		endDate := "2026-08-01"
		input := validEventInput()
		input.EndDate = &endDate

		_, err := svc.CreateEvent(context.Background(), CreateEventParams{Input: input})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["end_date"]; !ok {
			t.Fatalf("expected end_date validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("persists a normalized event", func(t *testing.T) {
		repo := &eventRepoStub{}
		svc := newEventService(repo)

		input := validEventInput()
		input.Recurrence = " Weekly "
		input.Weekdays = []time.Weekday{time.Friday, time.Monday, time.Friday}

		event, err := svc.CreateEvent(context.Background(), CreateEventParams{Input: input})
		if err != nil {
			t.Fatalf("CreateEvent returned error: %v", err)
		}
		if event.Recurrence != "weekly" {
			t.Errorf("Recurrence = %q, want weekly", event.Recurrence)
		}
		if len(event.Weekdays) != 2 || event.Weekdays[0] != time.Monday || event.Weekdays[1] != time.Friday {
			t.Errorf("Weekdays = %v, want deduplicated ascending", event.Weekdays)
		}
		if repo.created.ID != "evt-1" {
			t.Errorf("persisted ID = %q, want evt-1", repo.created.ID)
		}
	})
}

func TestEventService_OccurrencesOn(t *testing.T) {
	// 2026-09-07 is a Monday.
	mondayWeekly := RecurringEvent{
		ID:              "evt-monday",
		Title:           "Inventory count",
		Start:           600, // 10:00
		DurationMinutes: 60,
		Recurrence:      "weekly",
		Weekdays:        []time.Weekday{time.Monday},
		StartDate:       "2026-09-01",
		IsActive:        true,
	}
	daily := RecurringEvent{
		ID:              "evt-daily",
		Title:           "Opening checklist",
		Start:           510, // 08:30
		DurationMinutes: 30,
		Recurrence:      "daily",
		StartDate:       "2026-01-01",
		IsActive:        true,
	}
	sundayOnly := RecurringEvent{
		ID:              "evt-sunday",
		Title:           "Weekend reset",
		Start:           480,
		DurationMinutes: 120,
		Recurrence:      "custom",
		Weekdays:        []time.Weekday{time.Sunday},
		StartDate:       "2026-01-01",
		IsActive:        true,
	}

	t.Run("expands matching events in start order", func(t *testing.T) {
		repo := &eventRepoStub{activeList: []RecurringEvent{mondayWeekly, daily, sundayOnly}}
		svc := newEventService(repo)

		occurrences, err := svc.OccurrencesOn(context.Background(), "2026-09-07")
		if err != nil {
			t.Fatalf("OccurrencesOn returned error: %v", err)
		}
		if len(occurrences) != 2 {
			t.Fatalf("occurrences = %d, want 2", len(occurrences))
		}
		if occurrences[0].EventID != "evt-daily" || occurrences[1].EventID != "evt-monday" {
			t.Errorf("order = %s, %s", occurrences[0].EventID, occurrences[1].EventID)
		}
		if got := occurrences[1].Interval.String(); got != "10:00-11:00" {
			t.Errorf("interval = %s, want 10:00-11:00", got)
		}
	})

	t.Run("validates the date", func(t *testing.T) {
		svc := newEventService(&eventRepoStub{})

		_, err := svc.OccurrencesOn(context.Background(), "someday")

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("skips events with invalid recurrence data", func(t *testing.T) {
		broken := mondayWeekly
		broken.ID = "evt-broken"
		broken.Recurrence = "fortnightly"
		repo := &eventRepoStub{activeList: []RecurringEvent{broken, daily}}
		svc := newEventService(repo)

		occurrences, err := svc.OccurrencesOn(context.Background(), "2026-09-07")
		if err != nil {
			t.Fatalf("OccurrencesOn returned error: %v", err)
		}
		if len(occurrences) != 1 || occurrences[0].EventID != "evt-daily" {
			t.Fatalf("occurrences = %+v, want only evt-daily", occurrences)
		}
	})
}

func TestEventService_EventOccurrenceDates(t *testing.T) {
	event := RecurringEvent{
		ID:              "evt-1",
		Title:           "Inventory count",
		Start:           600,
		DurationMinutes: 60,
		Recurrence:      "weekdays",
		StartDate:       "2026-09-01",
		IsActive:        true,
	}

	t.Run("expands the rule over the range", func(t *testing.T) {
		svc := newEventService(&eventRepoStub{getEvent: event})

		dates, err := svc.EventOccurrenceDates(context.Background(), "evt-1", "2026-09-07", "2026-09-13")
		if err != nil {
			t.Fatalf("EventOccurrenceDates returned error: %v", err)
		}
		if len(dates) != 5 {
			t.Fatalf("dates = %v, want five weekdays", dates)
		}
		if dates[0] != "2026-09-07" || dates[4] != "2026-09-11" {
			t.Errorf("dates = %v", dates)
		}
	})

	t.Run("validates range bounds", func(t *testing.T) {
		svc := newEventService(&eventRepoStub{getEvent: event})

		_, err := svc.EventOccurrenceDates(context.Background(), "evt-1", "soon", "later")

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("returns not found for missing events", func(t *testing.T) {
		svc := newEventService(&eventRepoStub{})

		_, err := svc.EventOccurrenceDates(context.Background(), "evt-missing", "2026-09-07", "2026-09-13")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
