// Package get_availabilities answers the public availability query: which
// slot start times exist on a day for a service, and which are still free.
package get_availabilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	menuRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/menu"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
)

// UseCase computes the availability response for one day and service.
type UseCase struct {
	menuRepo     MenuItemRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	engine       *availability.Engine
	logger       Logger
}

// NewUseCase creates the availability usecase.
func NewUseCase(
	menuRepository MenuItemRepository,
	scheduleRepository ScheduleRepository,
	bookingRepository BookingRepository,
	engine *availability.Engine,
	logger Logger,
) *UseCase {
	return &UseCase{
		menuRepo:     menuRepository,
		scheduleRepo: scheduleRepository,
		bookingRepo:  bookingRepository,
		engine:       engine,
		logger:       logger,
	}
}

// Execute computes the slot grid for the requested date and service.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailabilities: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Validate the request.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailabilities: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the service; its duration sizes the slots.
	item, err := uc.menuRepo.GetItemByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
			uc.logger.Warn("GetAvailabilities: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailabilities: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Fetch the monthly schedule. A missing schedule means the salon has
	// not opened the month; the engine turns that into an empty grid.
	var schedule *domain.MonthlySchedule
	schedule, err = uc.scheduleRepo.GetByMonthYear(ctx, int(req.Date.Month()), req.Date.Year())
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetAvailabilities: failed to get schedule %d/%d: %v",
				int(req.Date.Month()), req.Date.Year(), err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		schedule = nil
	}

	// 4. Fetch bookings intersecting the salon-local day.
	dayStart, dayEnd := uc.engine.DayBounds(req.Date)
	bookings, err := uc.bookingRepo.GetOverlapping(ctx, req.ServiceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailabilities: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	booked := make([]domain.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		booked = append(booked, b.Interval())
	}

	// 5. Compute the grid.
	result := uc.engine.ComputeAvailableSlots(req.Date, item.DurationMinutes, schedule, booked)

	uc.logger.Info("GetAvailabilities: service=%d, date=%s: %d candidates, %d available",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(result.AllTimes), len(result.AvailableTimes))

	return &Response{
		Date:           req.Date,
		ServiceID:      req.ServiceID,
		AllTimes:       result.AllTimes,
		AvailableTimes: result.AvailableTimes,
	}, nil
}
