// Package http provides HTTP handlers and middleware for the workforce scheduler API.
//
// Every endpoint requires the `X-Manager-Id` header; `X-Manager-Section` and
// `X-Manager-Initials` are optional and stamped onto created tasks. The router
// exposes the following endpoints:
//   - POST /estimates: computes a task duration without persisting anything.
//     Body: {"package_count","team_size","palette_good","start_time","mode"}
//     where mode "quick" selects the per-package heuristic. The response carries
//     the hours/minutes/seconds breakdown, the required whole minutes, and the
//     derived end time when a start time was supplied.
//   - GET /tasks?date=YYYY-MM-DD, POST /tasks, GET/PUT/DELETE /tasks/{id}:
//     task management endpoints exchanging the `taskDTO` payload defined in
//     task_handler.go. Creates and updates return conflict warnings and, for
//     manually assigned tasks, non-blocking allocation advisories. Unconfirmed
//     overlaps are rejected with 409 CONFLICT_CONFIRMATION_REQUIRED until the
//     caller resubmits with confirm_conflicts.
//   - POST /tasks/{id}/delay: shifts a task by {"minutes","reason"} and marks it
//     delayed. POST /tasks/{id}/complete: marks a task completed.
//   - GET /employees, POST /employees, GET/PUT/DELETE /employees/{id}: employee
//     roster endpoints exchanging the `employeeDTO` payload defined in
//     employee_handler.go.
//   - GET /employees/{id}/availability?date=YYYY-MM-DD: reports total, committed,
//     and remaining minutes for an employee on a date.
//   - GET /events, POST /events, GET/PUT/DELETE /events/{id}: recurring event
//     endpoints exchanging the `eventDTO` payload defined in event_handler.go.
//   - GET /events/occurrences?date=YYYY-MM-DD: expands active recurring events
//     into concrete occurrences for a date.
//   - GET /events/{id}/occurrences?from=...&to=...: lists the dates on which a
//     single event occurs within an inclusive range.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
