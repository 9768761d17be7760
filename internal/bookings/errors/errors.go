package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrDateConflict = errors.New("booking dates conflict with an existing booking")

	ErrPastDate = errors.New("booking cannot start in the past")

	// ErrLocked means another request holds an unexpired lock on the bus.
	ErrLocked = errors.New("bus is being booked by another request")
)
