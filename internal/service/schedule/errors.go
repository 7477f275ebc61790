package schedule

import "errors"

var (
	// ErrScheduleNotFound is returned when no schedule exists for the month.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures.
	ErrInternal = errors.New("service: internal error")
)
