package menu

import "errors"

var (
	// ErrItemNotFound is returned when the menu item does not exist.
	ErrItemNotFound = errors.New("menu item not found")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures.
	ErrInternal = errors.New("service: internal error")
)
