package scheduling

import "testing"

func TestCommitted(t *testing.T) {
	t.Parallel()

	proposed := ParseInterval("10:00", "11:00")

	t.Run("listed participant with overlap is committed", func(t *testing.T) {
		bookings := []Booking{{ID: "t1", Interval: ParseInterval("10:30", "12:00"), AssigneeIDs: []string{"emp-1"}}}
		if !Committed(proposed, "emp-1", bookings) {
			t.Fatal("expected committed")
		}
		if Committed(proposed, "emp-2", bookings) {
			t.Fatal("unlisted employee should be free")
		}
	})

	t.Run("non-overlapping booking leaves employee free", func(t *testing.T) {
		bookings := []Booking{{ID: "t1", Interval: ParseInterval("11:00", "12:00"), AssigneeIDs: []string{"emp-1"}}}
		if Committed(proposed, "emp-1", bookings) {
			t.Fatal("touching booking should not commit")
		}
	})

	t.Run("legacy booking without assignees blocks everyone", func(t *testing.T) {
		bookings := []Booking{{ID: "t1", Interval: ParseInterval("10:30", "12:00")}}
		if !Committed(proposed, "emp-1", bookings) {
			t.Fatal("legacy booking should block all employees")
		}
	})
}

func TestPickAutomatic(t *testing.T) {
	t.Parallel()

	proposed := ParseInterval("13:00", "14:40")

	t.Run("selects largest remaining capacity", func(t *testing.T) {
		candidates := []Candidate{
			{EmployeeID: "A", RemainingMinutes: 120},
			{EmployeeID: "B", RemainingMinutes: 90},
		}
		best, ok := PickAutomatic(proposed, 100, candidates)
		if !ok || best.EmployeeID != "A" {
			t.Fatalf("got %q ok=%v, want A", best.EmployeeID, ok)
		}
	})

	t.Run("no employee available when capacity short everywhere", func(t *testing.T) {
		candidates := []Candidate{
			{EmployeeID: "A", RemainingMinutes: 120},
			{EmployeeID: "B", RemainingMinutes: 90},
		}
		if _, ok := PickAutomatic(proposed, 150, candidates); ok {
			t.Fatal("expected no eligible employee")
		}
	})

	t.Run("never selects below required minutes", func(t *testing.T) {
		candidates := []Candidate{
			{EmployeeID: "A", RemainingMinutes: 99},
			{EmployeeID: "B", RemainingMinutes: 100},
		}
		best, ok := PickAutomatic(proposed, 100, candidates)
		if !ok || best.EmployeeID != "B" {
			t.Fatalf("got %q ok=%v, want B", best.EmployeeID, ok)
		}
	})

	t.Run("committed employees are skipped", func(t *testing.T) {
		candidates := []Candidate{
			{
				EmployeeID:       "A",
				RemainingMinutes: 240,
				Commitments:      []Booking{{ID: "t1", Interval: ParseInterval("13:30", "15:00"), AssigneeIDs: []string{"A"}}},
			},
			{EmployeeID: "B", RemainingMinutes: 110},
		}
		best, ok := PickAutomatic(proposed, 100, candidates)
		if !ok || best.EmployeeID != "B" {
			t.Fatalf("got %q ok=%v, want B", best.EmployeeID, ok)
		}
	})

	t.Run("ties keep encounter order", func(t *testing.T) {
		candidates := []Candidate{
			{EmployeeID: "A", RemainingMinutes: 120},
			{EmployeeID: "B", RemainingMinutes: 120},
		}
		best, ok := PickAutomatic(proposed, 60, candidates)
		if !ok || best.EmployeeID != "A" {
			t.Fatalf("got %q ok=%v, want A", best.EmployeeID, ok)
		}
	})
}

func TestPickTeam(t *testing.T) {
	t.Parallel()

	proposed := ParseInterval("09:00", "10:00")
	candidates := []Candidate{
		{EmployeeID: "A", RemainingMinutes: 300},
		{EmployeeID: "B", RemainingMinutes: 200},
		{EmployeeID: "C", RemainingMinutes: 100},
	}

	t.Run("fills team greedily by capacity", func(t *testing.T) {
		team, ok := PickTeam(proposed, 60, 2, candidates)
		if !ok {
			t.Fatal("expected a full team")
		}
		if len(team) != 2 || team[0] != "A" || team[1] != "B" {
			t.Fatalf("team = %v, want [A B]", team)
		}
	})

	t.Run("fails when pool cannot fill team", func(t *testing.T) {
		if _, ok := PickTeam(proposed, 150, 3, candidates); ok {
			t.Fatal("expected allocation failure")
		}
	})

	t.Run("does not mutate caller slice", func(t *testing.T) {
		if _, ok := PickTeam(proposed, 60, 3, candidates); !ok {
			t.Fatal("expected a full team")
		}
		if len(candidates) != 3 {
			t.Fatalf("candidate pool mutated, len = %d", len(candidates))
		}
	})
}

func TestReviewManual(t *testing.T) {
	t.Parallel()

	proposed := ParseInterval("10:00", "11:40")

	selected := []Candidate{
		{
			EmployeeID:       "A",
			RemainingMinutes: 60,
			Commitments:      []Booking{{ID: "t1", Interval: ParseInterval("10:30", "11:00"), AssigneeIDs: []string{"A"}}},
		},
		{EmployeeID: "B", RemainingMinutes: 200},
	}

	advisories := ReviewManual(proposed, 100, selected)
	if len(advisories) != 2 {
		t.Fatalf("got %d advisories, want 2", len(advisories))
	}
	if advisories[0].EmployeeID != "A" || advisories[0].Reason != AdvisoryAlreadyCommitted {
		t.Fatalf("unexpected first advisory: %+v", advisories[0])
	}
	if advisories[1].EmployeeID != "A" || advisories[1].Reason != AdvisoryInsufficientCapacity {
		t.Fatalf("unexpected second advisory: %+v", advisories[1])
	}

	if got := ReviewManual(proposed, 50, []Candidate{{EmployeeID: "B", RemainingMinutes: 200}}); got != nil {
		t.Fatalf("clean selection should yield nil, got %v", got)
	}
}
