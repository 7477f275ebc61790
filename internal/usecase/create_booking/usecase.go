// Package create_booking books a slot for a customer. The conflict re-check
// and the insert run in one serializable transaction so two customers can
// never hold the same slot.
package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	menuRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/menu"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
	"github.com/beautylounge/salon-booking-service/internal/mailer"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

// UseCase creates bookings.
type UseCase struct {
	bookingRepo  BookingRepository
	menuRepo     MenuItemRepository
	scheduleRepo ScheduleRepository
	engine       *availability.Engine
	txManager    TransactionManager
	mailer       Mailer
	adminEmail   string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the booking usecase.
func NewUseCase(
	bookingRepository BookingRepository,
	menuRepository MenuItemRepository,
	scheduleRepository ScheduleRepository,
	engine *availability.Engine,
	txManager TransactionManager,
	bookingMailer Mailer,
	adminEmail string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		menuRepo:     menuRepository,
		scheduleRepo: scheduleRepository,
		engine:       engine,
		txManager:    txManager,
		mailer:       bookingMailer,
		adminEmail:   adminEmail,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute books the requested slot.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate the request.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Resolve the service.
	item, err := uc.menuRepo.GetItemByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Anchor the slot to absolute instants in the salon timezone.
	start, err := uc.slotStart(req.Date, req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: bad start time %q: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}
	end := start.Add(time.Duration(item.DurationMinutes) * time.Minute)

	if !start.After(now) {
		uc.logger.Warn("CreateBooking: slot %s is in the past", start.Format(time.RFC3339))
		return nil, ErrInvalidDate
	}

	var result *domain.Booking

	// 4. Re-validate the slot against the schedule and existing bookings, and
	// insert, inside one serializable transaction.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Fetch the monthly schedule.
		schedule, err := uc.scheduleRepo.GetByMonthYear(txCtx, int(req.Date.Month()), req.Date.Year())
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Error("CreateBooking: failed to get schedule %d/%d: %v",
					int(req.Date.Month()), req.Date.Year(), err)
				return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
			}
			schedule = nil
		}

		// 4.2. Fetch the day's bookings and recompute the grid.
		dayStart, dayEnd := uc.engine.DayBounds(req.Date)
		bookings, err := uc.bookingRepo.GetOverlapping(txCtx, req.ServiceID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		booked := make([]domain.BookedInterval, 0, len(bookings))
		for _, b := range bookings {
			booked = append(booked, b.Interval())
		}

		grid := uc.engine.ComputeAvailableSlots(req.Date, item.DurationMinutes, schedule, booked)
		if len(grid.AllTimes) == 0 {
			uc.logger.Warn("CreateBooking: salon is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrSalonClosed
		}
		if !containsTime(grid.AvailableTimes, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 4.3. Exact-interval re-check right before the insert.
		conflicts, err := uc.bookingRepo.GetOverlapping(txCtx, req.ServiceID, start, end)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to re-check conflicts: %v", err)
			return fmt.Errorf("%w: failed to re-check conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: slot %s taken by booking id=%d", req.StartTime, conflicts[0].ID)
			return ErrSlotUnavailable
		}

		// 4.4. Insert. Card payments stay pending until the payment webhook
		// confirms them.
		status := domain.StatusConfirmed
		if req.PaymentMethod == domain.PaymentCard {
			status = domain.StatusPending
		}

		booking := &domain.Booking{
			UserID:            req.UserID,
			MenuItemID:        item.ID,
			StartTime:         start,
			EndTime:           end,
			Status:            status,
			CustomerFirstName: req.CustomerFirstName,
			CustomerLastName:  req.CustomerLastName,
			CustomerEmail:     req.CustomerEmail,
			CustomerPhone:     req.CustomerPhone,
			PaymentMethod:     req.PaymentMethod,
			ServiceName:       item.Name,
			ServicePrice:      float64(item.Price),
			Notes:             req.Notes,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, service=%d, slot=%s %s",
		result.ID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 5. Emails are best effort; the booking stands either way.
	uc.sendEmails(ctx, result)

	return &Response{Booking: result}, nil
}

// slotStart converts the calendar date plus salon-local "HH:MM" into the
// absolute UTC start instant.
func (uc *UseCase) slotStart(date time.Time, startTime types.TimeString) (time.Time, error) {
	mins, err := startTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := date.Date()
	localMidnight := time.Date(y, m, d, 0, 0, 0, 0, uc.engine.Timezone())
	return localMidnight.Add(time.Duration(mins) * time.Minute).UTC(), nil
}

func (uc *UseCase) sendEmails(ctx context.Context, booking *domain.Booking) {
	loc := uc.engine.Timezone()

	if booking.Status == domain.StatusConfirmed {
		subject, body := mailer.BookingConfirmation(booking, loc)
		if err := uc.mailer.Send(ctx, booking.CustomerEmail, subject, body); err != nil {
			uc.logger.Error("CreateBooking: failed to send confirmation for booking id=%d: %v", booking.ID, err)
		}
	}

	if uc.adminEmail != "" {
		subject, body := mailer.AdminBookingNotification(booking, loc)
		if err := uc.mailer.Send(ctx, uc.adminEmail, subject, body); err != nil {
			uc.logger.Error("CreateBooking: failed to notify admin for booking id=%d: %v", booking.ID, err)
		}
	}
}

func containsTime(times []types.TimeString, want types.TimeString) bool {
	for _, t := range times {
		if t == want {
			return true
		}
	}
	return false
}
