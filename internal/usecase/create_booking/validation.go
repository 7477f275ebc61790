package create_booking

import (
	"fmt"
	"strings"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerFirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerLastName) == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}
	if err := validateEmail(req.CustomerEmail); err != nil {
		return err
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if err := validatePaymentMethod(req.PaymentMethod); err != nil {
		return err
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	return nil
}

func validatePaymentMethod(method domain.PaymentMethod) error {
	switch method {
	case domain.PaymentCard, domain.PaymentWave:
		return nil
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}
}
