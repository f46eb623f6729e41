package scheduling

import "sort"

// Booking represents an already-committed interval on a given date: an
// existing task or a break. AssigneeIDs lists the employees bound to it; an
// empty list marks a legacy record whose participants were never captured.
type Booking struct {
	ID          string
	Title       string
	Interval    Interval
	AssigneeIDs []string
}

// FixedEvent is a statically configured daily event such as the morning
// meeting, applying to every date.
type FixedEvent struct {
	Title    string
	Interval Interval
}

// Occurrence is a recurring event expanded onto a concrete date.
type Occurrence struct {
	EventID  string
	Title    string
	Interval Interval
}

// ConflictSource identifies which collection a conflicting item came from.
type ConflictSource string

const (
	// ConflictSourceTask marks a conflict with an existing task or break.
	ConflictSourceTask ConflictSource = "task"
	// ConflictSourceFixedEvent marks a conflict with a configured daily event.
	ConflictSourceFixedEvent ConflictSource = "fixed_event"
	// ConflictSourceRecurringEvent marks a conflict with an expanded recurring event.
	ConflictSourceRecurringEvent ConflictSource = "recurring_event"
)

// Conflict details one overlapping item that callers present to the manager.
type Conflict struct {
	Source   ConflictSource
	ID       string
	Title    string
	Interval Interval
}

// DetectConflicts returns every task, fixed event, and recurring-event
// occurrence whose interval overlaps the proposed interval, ordered
// chronologically by start time. All inputs must belong to the same date;
// assembling them is the caller's job.
func DetectConflicts(proposed Interval, bookings []Booking, fixed []FixedEvent, occurrences []Occurrence) []Conflict {
	conflicts := make([]Conflict, 0)

	for _, booking := range bookings {
		if proposed.Overlaps(booking.Interval) {
			conflicts = append(conflicts, Conflict{
				Source:   ConflictSourceTask,
				ID:       booking.ID,
				Title:    booking.Title,
				Interval: booking.Interval,
			})
		}
	}

	for _, event := range fixed {
		if proposed.Overlaps(event.Interval) {
			conflicts = append(conflicts, Conflict{
				Source:   ConflictSourceFixedEvent,
				Title:    event.Title,
				Interval: event.Interval,
			})
		}
	}

	for _, occurrence := range occurrences {
		if proposed.Overlaps(occurrence.Interval) {
			conflicts = append(conflicts, Conflict{
				Source:   ConflictSourceRecurringEvent,
				ID:       occurrence.EventID,
				Title:    occurrence.Title,
				Interval: occurrence.Interval,
			})
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Interval.Start != conflicts[j].Interval.Start {
			return conflicts[i].Interval.Start < conflicts[j].Interval.Start
		}
		if conflicts[i].Title != conflicts[j].Title {
			return conflicts[i].Title < conflicts[j].Title
		}
		return conflicts[i].ID < conflicts[j].ID
	})

	if len(conflicts) == 0 {
		return nil
	}
	return conflicts
}
