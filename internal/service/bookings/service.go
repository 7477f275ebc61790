// Package bookings manages existing bookings: lookups, cancellation and the
// admin operations. Creating a booking lives in its own usecase.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	bookingRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
	"github.com/beautylounge/salon-booking-service/internal/mailer"
	"github.com/beautylounge/salon-booking-service/internal/service/bookings/models"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

// Service manages bookings.
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	engine       *availability.Engine
	txManager    TransactionManager
	mailer       Mailer
	logger       Logger
}

// NewService creates the bookings service.
func NewService(
	bookingRepository BookingRepository,
	scheduleRepository ScheduleRepository,
	engine *availability.Engine,
	txManager TransactionManager,
	bookingMailer Mailer,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepository,
		scheduleRepo: scheduleRepository,
		engine:       engine,
		txManager:    txManager,
		mailer:       bookingMailer,
		logger:       logger,
	}
}

// GetByID fetches one booking. Customers only see their own bookings; admins
// see everything.
func (s *Service) GetByID(ctx context.Context, id, requesterID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requesterID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(booking, requesterID, isAdmin); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requesterID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking, s.engine.Timezone()), nil
}

// GetUserBookings lists a customer's bookings, optionally filtered by status.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", req.UserID)

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.engine.Timezone()), nil
}

// ListBookings lists bookings for the back office with optional filters.
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings with filter")

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, s.engine.Timezone()), nil
}

// Cancel cancels a booking and notifies the customer. Customers can cancel
// their own bookings; admins can cancel any.
func (s *Service) Cancel(ctx context.Context, id, requesterID int64, isAdmin bool) error {
	s.logger.Info("Cancel: cancelling booking id=%d for user=%d", id, requesterID)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if err := checkAccess(booking, requesterID, isAdmin); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", requesterID, id)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled (status=%s)", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			return ErrCannotCancel
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	subject, body := mailer.BookingCancellation(booking, s.engine.Timezone())
	if err := s.mailer.Send(ctx, booking.CustomerEmail, subject, body); err != nil {
		s.logger.Error("Cancel: failed to send cancellation email for booking id=%d: %v", id, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%d", id)
	return nil
}

// UpdateStatus sets a booking's status. Back office only.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.logger.Info("UpdateStatus: booking id=%d -> %s", id, status)

	domainStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domainStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Reschedule moves a booking to a new slot. The conflict check and the move
// run in one serializable transaction. Back office only.
func (s *Service) Reschedule(ctx context.Context, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d -> %s %s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	startTS := types.TimeString(req.StartTime)
	mins, err := startTS.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Reschedule", req.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, ErrCannotCancel
	}

	duration := int(booking.EndTime.Sub(booking.StartTime) / time.Minute)

	y, m, d := req.Date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.engine.Timezone()).
		Add(time.Duration(mins) * time.Minute).UTC()
	end := start.Add(time.Duration(duration) * time.Minute)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		schedule, err := s.scheduleRepo.GetByMonthYear(txCtx, int(req.Date.Month()), req.Date.Year())
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return fmt.Errorf("%w: Reschedule - failed to get schedule: %v", ErrInternal, err)
			}
			schedule = nil
		}

		dayStart, dayEnd := s.engine.DayBounds(req.Date)
		others, err := s.bookingRepo.GetOverlapping(txCtx, booking.MenuItemID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - failed to get bookings: %v", ErrInternal, err)
		}

		// The booking being moved does not block itself.
		booked := make([]domain.BookedInterval, 0, len(others))
		for _, other := range others {
			if other.ID == booking.ID {
				continue
			}
			booked = append(booked, other.Interval())
		}

		grid := s.engine.ComputeAvailableSlots(req.Date, duration, schedule, booked)
		if !containsTime(grid.AvailableTimes, startTS) {
			return ErrSlotUnavailable
		}

		return s.bookingRepo.Reschedule(txCtx, booking.ID, start, end)
	})
	if err != nil {
		return nil, err
	}

	booking.StartTime = start
	booking.EndTime = end

	subject, body := mailer.BookingConfirmation(booking, s.engine.Timezone())
	if err := s.mailer.Send(ctx, booking.CustomerEmail, subject, body); err != nil {
		s.logger.Error("Reschedule: failed to send email for booking id=%d: %v", booking.ID, err)
	}

	s.logger.Info("Reschedule: moved booking id=%d to %s %s",
		booking.ID, req.Date.Format(domain.DateFormat), req.StartTime)
	return models.FromDomainBooking(booking, s.engine.Timezone()), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkAccess allows admins and the booking owner. Guest bookings have no
// owner, so only admins can act on them.
func checkAccess(booking *domain.Booking, requesterID int64, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if booking.UserID != nil && *booking.UserID == requesterID {
		return nil
	}
	return ErrAccessDenied
}

func containsTime(times []types.TimeString, want types.TimeString) bool {
	for _, t := range times {
		if t == want {
			return true
		}
	}
	return false
}
