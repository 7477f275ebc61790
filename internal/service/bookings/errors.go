package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the caller may not act on the booking.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is already cancelled.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrSlotUnavailable is returned when a reschedule target is taken.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures.
	ErrInternal = errors.New("service: internal error")
)
