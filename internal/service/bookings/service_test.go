package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	bookingRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
	"github.com/beautylounge/salon-booking-service/internal/service/bookings/models"
	"github.com/beautylounge/salon-booking-service/pkg/ptr"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

var rome = mustLoadLocation("Europe/Rome")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Monday 2025-10-20.
var monday = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	updatedStatus   domain.BookingStatus
	rescheduledID   int64
	rescheduledFrom time.Time
	rescheduledTo   time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == nil || *b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, menuItemID int64, from, to time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MenuItemID == menuItemID && b.IsActive() && b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	b.Status = domain.StatusCancelled
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = status
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, start, end time.Time) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.rescheduledID = id
	f.rescheduledFrom = start
	f.rescheduledTo = end
	return nil
}

type fakeScheduleRepo struct {
	schedule *domain.MonthlySchedule
}

func (f *fakeScheduleRepo) GetByMonthYear(_ context.Context, month, year int) (*domain.MonthlySchedule, error) {
	if f.schedule == nil || f.schedule.Month != month || f.schedule.Year != year {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentEmail struct {
	recipient string
	subject   string
}

type fakeMailer struct {
	sent []sentEmail
}

func (f *fakeMailer) Send(_ context.Context, recipient, subject, _ string) error {
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testEngine() *availability.Engine {
	return availability.NewEngine(availability.Config{
		Timezone:      rome,
		ClosedWeekday: time.Sunday,
		LunchStart:    "13:00",
		LunchEnd:      "14:00",
	})
}

func testSchedule() *domain.MonthlySchedule {
	return &domain.MonthlySchedule{
		Month: 10,
		Year:  2025,
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{{Start: "09:00", End: "12:00"}},
	}
}

func localUTC(date time.Time, hhmm string) time.Time {
	mins, _ := types.TimeString(hhmm).Minutes()
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, rome).Add(time.Duration(mins) * time.Minute).UTC()
}

func testBooking(id int64, userID *int64, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		UserID:            userID,
		MenuItemID:        1,
		StartTime:         localUTC(monday, start),
		EndTime:           localUTC(monday, end),
		Status:            domain.StatusConfirmed,
		CustomerFirstName: "Awa",
		CustomerLastName:  "Diop",
		CustomerEmail:     "awa@example.com",
		CustomerPhone:     "+221770000000",
		PaymentMethod:     domain.PaymentWave,
		ServiceName:       "Tresses",
		ServicePrice:      15000,
	}
}

type fixture struct {
	repo   *fakeBookingRepo
	sched  *fakeScheduleRepo
	mailer *fakeMailer
	svc    *Service
}

func newFixture(bookings ...*domain.Booking) *fixture {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	sched := &fakeScheduleRepo{schedule: testSchedule()}
	m := &fakeMailer{}
	return &fixture{
		repo:   repo,
		sched:  sched,
		mailer: m,
		svc:    NewService(repo, sched, testEngine(), fakeTxManager{}, m, nopLogger{}),
	}
}

func TestGetByID_OwnerSeesOwnBooking(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	resp, err := f.svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-10-20", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByID_OtherUserDenied(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	_, err := f.svc.GetByID(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAnyBooking(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	_, err := f.svc.GetByID(context.Background(), 1, 99, true)
	assert.NoError(t, err)
}

func TestGetByID_GuestBookingIsAdminOnly(t *testing.T) {
	f := newFixture(testBooking(1, nil, "10:00", "11:00"))

	_, err := f.svc.GetByID(context.Background(), 1, 42, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), 1, 42, true)
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 404, 42, true)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_OwnerCancelsAndCustomerIsNotified(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	err := f.svc.Cancel(context.Background(), 1, 42, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.repo.cancelledID)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "awa@example.com", f.mailer.sent[0].recipient)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00")
	b.Status = domain.StatusCancelled
	f := newFixture(b)

	err := f.svc.Cancel(context.Background(), 1, 42, false)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, f.mailer.sent)
}

func TestCancel_OtherUserDenied(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	err := f.svc.Cancel(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	confirmed := testBooking(1, ptr.Ptr(int64(42)), "09:00", "10:00")
	cancelled := testBooking(2, ptr.Ptr(int64(42)), "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled
	f := newFixture(confirmed, cancelled)

	list, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, int64(1), list.Bookings[0].ID)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("terminated"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(testBooking(1, nil, "10:00", "11:00"))

	err := f.svc.UpdateStatus(context.Background(), 1, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, f.repo.updatedStatus)

	err = f.svc.UpdateStatus(context.Background(), 1, "done")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = f.svc.UpdateStatus(context.Background(), 404, "confirmed")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestReschedule_MovesToFreeSlot(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	resp, err := f.svc.Reschedule(context.Background(), &models.RescheduleRequest{
		BookingID: 1,
		Date:      monday,
		StartTime: "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.repo.rescheduledID)
	assert.Equal(t, localUTC(monday, "11:00"), f.repo.rescheduledFrom)
	assert.Equal(t, localUTC(monday, "12:00"), f.repo.rescheduledTo)
	assert.Equal(t, "11:00", resp.StartTime)
	require.Len(t, f.mailer.sent, 1)
}

// The booking being moved must not block its own target slot.
func TestReschedule_OwnIntervalDoesNotBlock(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	_, err := f.svc.Reschedule(context.Background(), &models.RescheduleRequest{
		BookingID: 1,
		Date:      monday,
		StartTime: "10:30",
	})
	assert.NoError(t, err)
}

func TestReschedule_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture(
		testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"),
		testBooking(2, nil, "09:00", "10:00"),
	)

	_, err := f.svc.Reschedule(context.Background(), &models.RescheduleRequest{
		BookingID: 1,
		Date:      monday,
		StartTime: "09:30",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestReschedule_CancelledBooking(t *testing.T) {
	b := testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00")
	b.Status = domain.StatusCancelled
	f := newFixture(b)

	_, err := f.svc.Reschedule(context.Background(), &models.RescheduleRequest{
		BookingID: 1,
		Date:      monday,
		StartTime: "11:00",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestReschedule_InvalidTime(t *testing.T) {
	f := newFixture(testBooking(1, ptr.Ptr(int64(42)), "10:00", "11:00"))

	_, err := f.svc.Reschedule(context.Background(), &models.RescheduleRequest{
		BookingID: 1,
		Date:      monday,
		StartTime: "midi",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
