package scheduling

import "slices"

// Candidate bundles one employee's allocation inputs for a date: their
// remaining work capacity and the bookings already on their plate.
type Candidate struct {
	EmployeeID       string
	RemainingMinutes int
	Commitments      []Booking
}

// Committed reports whether the employee is bound to any booking that
// overlaps the proposed interval. A booking with no assignee list is a
// legacy record predating participant tracking; it conservatively blocks
// every employee.
func Committed(proposed Interval, employeeID string, bookings []Booking) bool {
	for _, booking := range bookings {
		if !proposed.Overlaps(booking.Interval) {
			continue
		}
		if len(booking.AssigneeIDs) == 0 {
			return true
		}
		if slices.Contains(booking.AssigneeIDs, employeeID) {
			return true
		}
	}
	return false
}

// AdvisoryReason labels a non-blocking warning raised against a manual
// employee selection.
type AdvisoryReason string

const (
	// AdvisoryAlreadyCommitted flags an employee bound to an overlapping booking.
	AdvisoryAlreadyCommitted AdvisoryReason = "already_committed"
	// AdvisoryInsufficientCapacity flags an employee short on remaining work minutes.
	AdvisoryInsufficientCapacity AdvisoryReason = "insufficient_capacity"
)

// Advisory is a warning about one manually selected employee. The manager
// may proceed regardless.
type Advisory struct {
	EmployeeID string
	Reason     AdvisoryReason
}

// ReviewManual inspects a manager's explicit selection and returns advisory
// warnings for double-booked or capacity-short employees. It never blocks.
func ReviewManual(proposed Interval, requiredMinutes int, selected []Candidate) []Advisory {
	advisories := make([]Advisory, 0)
	for _, candidate := range selected {
		if Committed(proposed, candidate.EmployeeID, candidate.Commitments) {
			advisories = append(advisories, Advisory{
				EmployeeID: candidate.EmployeeID,
				Reason:     AdvisoryAlreadyCommitted,
			})
		}
		if candidate.RemainingMinutes < requiredMinutes {
			advisories = append(advisories, Advisory{
				EmployeeID: candidate.EmployeeID,
				Reason:     AdvisoryInsufficientCapacity,
			})
		}
	}
	if len(advisories) == 0 {
		return nil
	}
	return advisories
}

// PickAutomatic selects the free employee with the greatest remaining
// capacity that still covers requiredMinutes. Ties keep the earlier
// candidate. The second return value is false when nobody is eligible.
//
// This is a greedy load-balancing heuristic, not an optimal assignment.
func PickAutomatic(proposed Interval, requiredMinutes int, candidates []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, candidate := range candidates {
		if candidate.RemainingMinutes < requiredMinutes {
			continue
		}
		if Committed(proposed, candidate.EmployeeID, candidate.Commitments) {
			continue
		}
		if !found || candidate.RemainingMinutes > best.RemainingMinutes {
			best = candidate
			found = true
		}
	}
	return best, found
}

// PickTeam applies PickAutomatic repeatedly to assemble a team of the given
// size, removing each pick from the pool. It returns the selected employee
// ids in pick order and false when the pool cannot fill the team.
func PickTeam(proposed Interval, requiredMinutes, teamSize int, candidates []Candidate) ([]string, bool) {
	if teamSize < 1 {
		teamSize = 1
	}

	pool := make([]Candidate, len(candidates))
	copy(pool, candidates)

	picked := make([]string, 0, teamSize)
	for len(picked) < teamSize {
		best, ok := PickAutomatic(proposed, requiredMinutes, pool)
		if !ok {
			return nil, false
		}
		picked = append(picked, best.EmployeeID)
		pool = slices.DeleteFunc(pool, func(c Candidate) bool {
			return c.EmployeeID == best.EmployeeID
		})
	}
	return picked, true
}
