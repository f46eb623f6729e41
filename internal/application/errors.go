package application

import "errors"

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a create collides with an existing record.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrNoEmployeeAvailable is returned when automatic allocation cannot find
	// an employee with enough remaining capacity.
	ErrNoEmployeeAvailable = errors.New("application: no employee available")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ConflictPendingError is returned when a task would overlap existing bookings
// and the caller has not confirmed the conflicts. The warnings describe every
// overlapping entry so the caller can resubmit with confirmation.
type ConflictPendingError struct {
	Warnings []ConflictWarning
}

// Error implements the error interface.
func (e *ConflictPendingError) Error() string {
	return "conflict confirmation required"
}
