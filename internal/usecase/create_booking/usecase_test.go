package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	menuRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/menu"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
)

var rome = mustLoadLocation("Europe/Rome")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Monday 2025-10-20; "now" is the Friday before.
var (
	monday = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	friday = time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)
)

type fakeMenuRepo struct {
	items map[int64]*domain.MenuItem
}

func (f *fakeMenuRepo) GetItemByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, menuRepo.ErrMenuItemNotFound
	}
	return item, nil
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

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, menuItemID int64, from, to time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MenuItemID == menuItemID && b.Status != domain.StatusCancelled &&
			b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

// fakeTxManager runs the callback directly; serialization is the database's
// concern, not the usecase's.
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

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

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

func validRequest() *Request {
	return &Request{
		Date:              monday,
		StartTime:         "10:00",
		ServiceID:         1,
		CustomerFirstName: "Awa",
		CustomerLastName:  "Diop",
		CustomerEmail:     "awa@example.com",
		CustomerPhone:     "+221771234567",
		PaymentMethod:     domain.PaymentWave,
	}
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	mailer   *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	menu := &fakeMenuRepo{items: map[int64]*domain.MenuItem{
		1: {ID: 1, Name: "Tresses", Price: 15000, DurationMinutes: 60},
	}}
	bookings := &fakeBookingRepo{}
	sent := &fakeMailer{}

	uc := NewUseCase(
		bookings,
		menu,
		&fakeScheduleRepo{schedule: testSchedule()},
		testEngine(),
		fakeTxManager{},
		sent,
		"admin@salon.example",
		nopLogger{},
	)
	uc.timeProvider = fixedClock{now: friday}

	return &fixture{uc: uc, bookings: bookings, mailer: sent}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "Tresses", b.ServiceName)
	assert.Equal(t, float64(15000), b.ServicePrice)

	// 10:00 Rome is 08:00 UTC during CEST.
	assert.Equal(t, time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), b.StartTime)
	assert.Equal(t, time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC), b.EndTime)

	// Confirmation to the customer, notification to the admin.
	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, "awa@example.com", f.mailer.sent[0].recipient)
	assert.Equal(t, "admin@salon.example", f.mailer.sent[1].recipient)
}

func TestExecute_CardBookingStaysPending(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.PaymentMethod = domain.PaymentCard

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)

	// No confirmation until the payment lands, only the admin notice.
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "admin@salon.example", f.mailer.sent[0].recipient)
}

func TestExecute_RejectsTakenSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestExecute_RejectsOverlappingSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 10:30 intersects the 10:00-11:00 booking.
	req := validRequest()
	req.StartTime = "10:30"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_RejectsLunchSlot(t *testing.T) {
	f := newFixture(t)

	// 12:30 would run into the lunch break even though 09:00-12:00 is the
	// only range; it is simply not on the grid.
	req := validRequest()
	req.StartTime = "12:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Date = monday.AddDate(0, 0, 1) // Tuesday, not in the schedule

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_PastSlotRejected(t *testing.T) {
	f := newFixture(t)
	f.uc.timeProvider = fixedClock{now: monday.AddDate(0, 0, 7)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ServiceID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing first name", func(r *Request) { r.CustomerFirstName = " " }},
		{"missing last name", func(r *Request) { r.CustomerLastName = "" }},
		{"malformed email", func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{"missing phone", func(r *Request) { r.CustomerPhone = "" }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"unknown payment method", func(r *Request) { r.PaymentMethod = "cash" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
