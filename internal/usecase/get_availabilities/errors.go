package get_availabilities

import "errors"

var (
	// ErrServiceNotFound is returned when the menu item does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
