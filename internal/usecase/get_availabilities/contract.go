package get_availabilities

import (
	"context"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// MenuItemRepository resolves the requested service.
type MenuItemRepository interface {
	GetItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
}

// ScheduleRepository fetches the admin-configured monthly schedule.
type ScheduleRepository interface {
	GetByMonthYear(ctx context.Context, month, year int) (*domain.MonthlySchedule, error)
}

// BookingRepository fetches the bookings occupying the requested day.
type BookingRepository interface {
	GetOverlapping(ctx context.Context, menuItemID int64, from, to time.Time) ([]*domain.Booking, error)
}

// Logger logs usecase progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
