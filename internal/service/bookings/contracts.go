package bookings

import (
	"context"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// BookingRepository persists bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetOverlapping(ctx context.Context, menuItemID int64, from, to time.Time) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Reschedule(ctx context.Context, id int64, start, end time.Time) error
}

// ScheduleRepository fetches the admin-configured monthly schedule.
type ScheduleRepository interface {
	GetByMonthYear(ctx context.Context, month, year int) (*domain.MonthlySchedule, error)
}

// TransactionManager runs reschedule conflict checks atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer delivers booking lifecycle emails. Failures never fail the
// operation.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Logger logs service progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
