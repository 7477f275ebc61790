package auth

import "errors"

var (
	// ErrEmailTaken is returned when the email already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a wrong email or password. The
	// two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is returned when signing in before the email has
	// been verified.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrUserNotFound is returned when the account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned for an unknown or expired token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service failures.
	ErrInternal = errors.New("service: internal error")
)
