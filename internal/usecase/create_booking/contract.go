package create_booking

import (
	"context"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// BookingRepository persists bookings and reports conflicts.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, menuItemID int64, from, to time.Time) ([]*domain.Booking, error)
}

// MenuItemRepository resolves the requested service.
type MenuItemRepository interface {
	GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
}

// ScheduleRepository fetches the admin-configured monthly schedule.
type ScheduleRepository interface {
	GetByMonthYear(ctx context.Context, month, year int) (*domain.MonthlySchedule, error)
}

// TransactionManager runs the conflict re-check and the insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer delivers the booking emails. Delivery failures never fail the
// booking.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// TimeProvider supplies the current time, swappable in tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger logs usecase progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
