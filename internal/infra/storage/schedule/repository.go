// Package schedule persists the admin-configured monthly availability.
// Weekdays and hour ranges are stored as the legacy comma-separated strings
// and parsed into domain.MonthlySchedule here, at the storage boundary, so
// the rest of the service never deals with the delimited format.
package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	"github.com/beautylounge/salon-booking-service/pkg/dbmetrics"
	"github.com/beautylounge/salon-booking-service/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Logger records skipped schedule entries.
type Logger interface {
	Warn(format string, v ...interface{})
}

// Repository persists monthly schedules in Postgres.
type Repository struct {
	db     DBExecutor
	logger Logger
}

// NewRepository creates a schedule repository.
func NewRepository(db DBExecutor, logger Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Upsert creates or replaces the schedule for (month, year). The delimited
// strings are stored verbatim; parsing happens on read.
func (r *Repository) Upsert(ctx context.Context, month, year int, availableDays, availableHours string) (*domain.MonthlySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admin_availabilities").
		Columns("month", "year", "available_days", "available_hours").
		Values(month, year, availableDays, availableHours).
		Suffix(`ON CONFLICT (month, year) DO UPDATE
			SET available_days = EXCLUDED.available_days,
			    available_hours = EXCLUDED.available_hours,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	sched := &domain.MonthlySchedule{
		Month:          month,
		Year:           year,
		AvailableDays:  availableDays,
		AvailableHours: availableHours,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sched.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time
	r.parse(sched)

	return sched, nil
}

// GetByMonthYear fetches the schedule for (month, year).
func (r *Repository) GetByMonthYear(ctx context.Context, month, year int) (*domain.MonthlySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"month",
		"year",
		"available_days",
		"available_hours",
		"created_at",
		"updated_at",
	).
		From("admin_availabilities").
		Where(squirrel.Eq{"month": month, "year": year}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMonthYear - build select query: %v", ErrBuildQuery, err)
	}

	var sched domain.MonthlySchedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&sched.Month,
		&sched.Year,
		&sched.AvailableDays,
		&sched.AvailableHours,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMonthYear - scan schedule: %v", ErrScanRow, err)
	}

	sched.CreatedAt = createdAt.Time
	sched.UpdatedAt = updatedAt.Time
	r.parse(&sched)

	return &sched, nil
}

// Delete removes the schedule for (month, year).
func (r *Repository) Delete(ctx context.Context, month, year int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("admin_availabilities").
		Where(squirrel.Eq{"month": month, "year": year}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// parse fills Days and Hours from the stored delimited strings. Entries that
// fail to parse are skipped and logged, never fatal.
func (r *Repository) parse(sched *domain.MonthlySchedule) {
	days, rejectedDays := domain.ParseWeekdays(sched.AvailableDays)
	for _, token := range rejectedDays {
		r.logger.Warn("schedule %d/%d: skipping unknown weekday %q", sched.Month, sched.Year, token)
	}

	hours, rejectedHours := domain.ParseHourRanges(sched.AvailableHours)
	for _, token := range rejectedHours {
		r.logger.Warn("schedule %d/%d: skipping malformed hour range %q", sched.Month, sched.Year, token)
	}

	sched.Days = days
	sched.Hours = hours
}
