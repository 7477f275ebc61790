package schedule

import (
	"context"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// ScheduleRepository persists monthly schedules.
type ScheduleRepository interface {
	Upsert(ctx context.Context, month, year int, availableDays, availableHours string) (*domain.MonthlySchedule, error)
	GetByMonthYear(ctx context.Context, month, year int) (*domain.MonthlySchedule, error)
	Delete(ctx context.Context, month, year int) error
}

// Logger logs service progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
