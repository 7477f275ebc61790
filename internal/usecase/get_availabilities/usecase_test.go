package get_availabilities

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
}

func (f *fakeBookingRepo) GetOverlapping(_ context.Context, menuItemID int64, from, to time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.MenuItemID == menuItemID && b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
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

func newTestUseCase(menu *fakeMenuRepo, sched *fakeScheduleRepo, bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(menu, sched, bookings, testEngine(), nopLogger{})
}

func TestExecute_ReturnsGrid(t *testing.T) {
	menu := &fakeMenuRepo{items: map[int64]*domain.MenuItem{
		1: {ID: 1, Name: "Tresses", DurationMinutes: 60},
	}}
	sched := &fakeScheduleRepo{schedule: testSchedule()}
	bookings := &fakeBookingRepo{}

	uc := newTestUseCase(menu, sched, bookings)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 1})
	require.NoError(t, err)

	want := []types.TimeString{"09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45", "11:00"}
	assert.Equal(t, want, resp.AllTimes)
	assert.Equal(t, want, resp.AvailableTimes)
	assert.Equal(t, int64(1), resp.ServiceID)
}

func TestExecute_ExcludesBookedSlots(t *testing.T) {
	menu := &fakeMenuRepo{items: map[int64]*domain.MenuItem{
		1: {ID: 1, Name: "Tresses", DurationMinutes: 60},
	}}
	sched := &fakeScheduleRepo{schedule: testSchedule()}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:         7,
			MenuItemID: 1,
			StartTime:  localUTC(monday, "10:00"),
			EndTime:    localUTC(monday, "11:00"),
			Status:     domain.StatusConfirmed,
		},
	}}

	uc := newTestUseCase(menu, sched, bookings)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 1})
	require.NoError(t, err)

	// The grid is unchanged; only availability shrinks.
	assert.Len(t, resp.AllTimes, 9)
	assert.Equal(t,
		[]types.TimeString{"09:00", "11:00"},
		resp.AvailableTimes)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeMenuRepo{items: map[int64]*domain.MenuItem{}}, &fakeScheduleRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 42})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NoScheduleMeansEmptyGrid(t *testing.T) {
	menu := &fakeMenuRepo{items: map[int64]*domain.MenuItem{
		1: {ID: 1, Name: "Tresses", DurationMinutes: 60},
	}}

	uc := newTestUseCase(menu, &fakeScheduleRepo{}, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.AllTimes)
	assert.Empty(t, resp.AvailableTimes)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeMenuRepo{}, &fakeScheduleRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{Date: monday, ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
