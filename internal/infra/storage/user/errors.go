package user

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrEmailTaken is returned when the email already has an account.
	ErrEmailTaken = errors.New("user.repository: email already registered")

	// ErrBuildQuery is returned when the SQL builder fails.
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery is returned when executing a query fails.
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
