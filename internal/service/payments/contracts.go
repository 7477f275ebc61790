package payments

import (
	"context"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// BookingRepository reads and updates bookings during the payment flow.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	SetPaymentStatus(ctx context.Context, id int64, paymentStatus string) error
}

// Mailer delivers the payment confirmation email. Failures never fail the
// webhook.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Logger logs service progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
