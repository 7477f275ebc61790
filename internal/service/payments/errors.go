package payments

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotPayable is returned when the booking does not await a card
	// payment.
	ErrNotPayable = errors.New("booking is not awaiting payment")

	// ErrProvider is returned when Stripe rejects or fails a call.
	ErrProvider = errors.New("payment provider error")

	// ErrInternal is returned for internal service failures.
	ErrInternal = errors.New("service: internal error")
)
