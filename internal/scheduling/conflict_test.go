package scheduling

import "testing"

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	fixed := []FixedEvent{
		{Title: "Morning Meeting", Interval: ParseInterval("09:00", "10:00")},
		{Title: "Training", Interval: ParseInterval("16:30", "18:00")},
	}

	t.Run("overlapping fixed event is reported", func(t *testing.T) {
		conflicts := DetectConflicts(ParseInterval("09:30", "10:30"), nil, fixed, nil)
		if len(conflicts) != 1 {
			t.Fatalf("got %d conflicts, want 1", len(conflicts))
		}
		if conflicts[0].Source != ConflictSourceFixedEvent || conflicts[0].Title != "Morning Meeting" {
			t.Fatalf("unexpected conflict: %+v", conflicts[0])
		}
	})

	t.Run("touching boundary yields no conflict", func(t *testing.T) {
		conflicts := DetectConflicts(ParseInterval("10:00", "11:00"), nil, fixed, nil)
		if conflicts != nil {
			t.Fatalf("got %d conflicts, want none", len(conflicts))
		}
	})

	t.Run("all sources collected in chronological order", func(t *testing.T) {
		bookings := []Booking{
			{ID: "task-2", Title: "Restock aisle 4", Interval: ParseInterval("11:00", "12:00"), AssigneeIDs: []string{"emp-1"}},
			{ID: "task-1", Title: "Unload truck", Interval: ParseInterval("08:30", "09:15"), AssigneeIDs: []string{"emp-2"}},
		}
		occurrences := []Occurrence{
			{EventID: "evt-1", Title: "Inventory sync", Interval: ParseInterval("10:30", "11:15")},
		}

		conflicts := DetectConflicts(ParseInterval("08:00", "12:00"), bookings, fixed, occurrences)
		if len(conflicts) != 4 {
			t.Fatalf("got %d conflicts, want 4", len(conflicts))
		}

		wantOrder := []string{"Unload truck", "Morning Meeting", "Inventory sync", "Restock aisle 4"}
		for i, want := range wantOrder {
			if conflicts[i].Title != want {
				t.Fatalf("conflict %d = %q, want %q", i, conflicts[i].Title, want)
			}
		}
	})

	t.Run("sources are labelled", func(t *testing.T) {
		bookings := []Booking{{ID: "task-1", Title: "Unload truck", Interval: ParseInterval("09:00", "10:00")}}
		occurrences := []Occurrence{{EventID: "evt-1", Title: "Sync", Interval: ParseInterval("09:00", "10:00")}}

		conflicts := DetectConflicts(ParseInterval("09:00", "10:00"), bookings, fixed, occurrences)
		sources := map[ConflictSource]int{}
		for _, conflict := range conflicts {
			sources[conflict.Source]++
		}
		if sources[ConflictSourceTask] != 1 || sources[ConflictSourceFixedEvent] != 1 || sources[ConflictSourceRecurringEvent] != 1 {
			t.Fatalf("unexpected source counts: %v", sources)
		}
	})

	t.Run("no candidates yields nil", func(t *testing.T) {
		if got := DetectConflicts(ParseInterval("09:00", "10:00"), nil, nil, nil); got != nil {
			t.Fatalf("got %v, want nil", got)
		}
	})
}
