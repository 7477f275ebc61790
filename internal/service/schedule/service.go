// Package schedule manages the admin-configured monthly availability.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
	"github.com/beautylounge/salon-booking-service/internal/service/schedule/models"
)

// Service manages monthly schedules.
type Service struct {
	repo   ScheduleRepository
	logger Logger
}

// NewService creates the schedule service.
func NewService(repo ScheduleRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Upsert creates or replaces the schedule for one month. At least one weekday
// and one hour range must parse, otherwise the month would be silently
// unbookable.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: schedule %d/%d", req.Month, req.Year)

	if err := validateMonthYear(req.Month, req.Year); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	days, _ := domain.ParseWeekdays(req.AvailableDays)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: availableDays contains no recognizable weekday", ErrInvalidInput)
	}
	hours, _ := domain.ParseHourRanges(req.AvailableHours)
	if len(hours) == 0 {
		return nil, fmt.Errorf("%w: availableHours contains no valid HH:MM-HH:MM range", ErrInvalidInput)
	}

	sched, err := s.repo.Upsert(ctx, req.Month, req.Year, req.AvailableDays, req.AvailableHours)
	if err != nil {
		s.logger.Error("Upsert: repository error for %d/%d: %v", req.Month, req.Year, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(sched), nil
}

// Get fetches the schedule for one month.
func (s *Service) Get(ctx context.Context, month, year int) (*models.ScheduleResponse, error) {
	if err := validateMonthYear(month, year); err != nil {
		return nil, err
	}

	sched, err := s.repo.GetByMonthYear(ctx, month, year)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for %d/%d: %v", month, year, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(sched), nil
}

// Delete removes the schedule for one month, closing it for booking.
func (s *Service) Delete(ctx context.Context, month, year int) error {
	s.logger.Info("Delete: schedule %d/%d", month, year)

	if err := validateMonthYear(month, year); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, month, year); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for %d/%d: %v", month, year, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateMonthYear(month, year int) error {
	if month < domain.MinMonth || month > domain.MaxMonth {
		return fmt.Errorf("%w: month must be between %d and %d", ErrInvalidInput, domain.MinMonth, domain.MaxMonth)
	}
	if year < domain.MinYear || year > domain.MaxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, domain.MinYear, domain.MaxYear)
	}
	return nil
}
