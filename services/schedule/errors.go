// File: services/schedule/errors.go
package schedule

import "errors"

// Caller-facing error taxonomy. Conflicts are business-rule violations
// that retrying with the same input would hit again; validation errors
// never reach storage; not-found errors mean the caller referenced a
// specific day or slot that does not exist.
var (
	// Validation.
	ErrInvalidInput = errors.New("invalid input")

	// Conflicts.
	ErrSlotTimePassed    = errors.New("slot time has passed")
	ErrSlotAlreadyExists = errors.New("slot already exists")
	ErrSlotOverlaps      = errors.New("overlaps existing slot")
	ErrSlotBooked        = errors.New("cannot remove a booked slot")
	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrSlotNotBooked     = errors.New("slot is not booked")
	ErrConcurrentUpdate  = errors.New("schedule was modified concurrently")

	// Not found.
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrSlotNotFound     = errors.New("slot not found")
)

// IsValidation reports whether err is a user-correctable input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict reports whether err is a business-rule conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotTimePassed) ||
		errors.Is(err, ErrSlotAlreadyExists) ||
		errors.Is(err, ErrSlotOverlaps) ||
		errors.Is(err, ErrSlotBooked) ||
		errors.Is(err, ErrSlotAlreadyBooked) ||
		errors.Is(err, ErrSlotNotBooked) ||
		errors.Is(err, ErrConcurrentUpdate)
}

// IsNotFound reports whether err refers to a missing schedule, day or slot.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrDayNotFound) ||
		errors.Is(err, ErrSlotNotFound)
}
