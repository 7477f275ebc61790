package create_booking

import "errors"

var (
	// ErrServiceNotFound is returned when the menu item does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate is returned when the requested slot is in the past.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrSalonClosed is returned when the salon has no slots on that date.
	ErrSalonClosed = errors.New("salon is closed on this date")

	// ErrSlotUnavailable is returned when the requested start time is not a
	// free slot.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrInternal is returned for internal usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
