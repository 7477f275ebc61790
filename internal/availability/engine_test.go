package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautylounge/salon-booking-service/internal/domain"
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

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(Config{
		Timezone:      rome,
		ClosedWeekday: time.Sunday,
		LunchStart:    "13:00",
		LunchEnd:      "14:00",
	})
}

// Monday 2025-10-20 in Europe/Rome (CEST, UTC+2).
var monday = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

func mondaySchedule() *domain.MonthlySchedule {
	return &domain.MonthlySchedule{
		Month: 10,
		Year:  2025,
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
	}
}

// localInterval builds a booked interval from salon-local wall-clock times on
// the given date, stored as UTC instants like the booking table does.
func localInterval(date time.Time, startHH, endHH string) domain.BookedInterval {
	y, m, d := date.Date()
	start, _ := types.TimeString(startHH).Minutes()
	end, _ := types.TimeString(endHH).Minutes()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, rome)
	return domain.BookedInterval{
		Start: dayStart.Add(time.Duration(start) * time.Minute).UTC(),
		End:   dayStart.Add(time.Duration(end) * time.Minute).UTC(),
	}
}

func times(values ...string) []types.TimeString {
	out := make([]types.TimeString, len(values))
	for i, v := range values {
		out[i] = types.TimeString(v)
	}
	return out
}

func TestComputeAvailableSlotsSplitRanges(t *testing.T) {
	e := newTestEngine(t)

	res := e.ComputeAvailableSlots(monday, 60, mondaySchedule(), nil)

	want := times(
		"09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45", "11:00",
		"14:00", "14:15", "14:30", "14:45", "15:00", "15:15", "15:30", "15:45",
		"16:00", "16:15", "16:30", "16:45", "17:00",
	)
	assert.Equal(t, want, res.AllTimes)
	assert.Equal(t, want, res.AvailableTimes, "no bookings: every slot is available")

	for _, slot := range res.AvailableTimes {
		m, err := slot.Minutes()
		require.NoError(t, err)
		assert.Zero(t, (m-9*60)%domain.SlotGranularityMinutes,
			"slot %s must align to the 15-minute grid of the range start", slot)
		assert.False(t, m >= 12*60 && m < 14*60, "no slot may start inside 12:00-14:00")
	}
}

func TestComputeAvailableSlotsExcludesBookedOverlaps(t *testing.T) {
	e := newTestEngine(t)
	booked := []domain.BookedInterval{localInterval(monday, "10:00", "11:00")}

	res := e.ComputeAvailableSlots(monday, 30, mondaySchedule(), booked)

	for _, excluded := range times("10:00", "10:15", "10:30", "10:45") {
		assert.NotContains(t, res.AvailableTimes, excluded)
		assert.Contains(t, res.AllTimes, excluded, "booked slots stay in the full grid")
	}
	// Boundary-touching slots survive: 09:30 ends exactly at 10:00 and 11:00
	// starts exactly where the booking ends.
	for _, included := range times("09:00", "09:15", "09:30", "11:00", "11:15", "11:30") {
		assert.Contains(t, res.AvailableTimes, included)
	}
}

func TestComputeAvailableSlotsSubMinuteEndStillBlocks(t *testing.T) {
	e := newTestEngine(t)

	// Ends 30 seconds into 11:00; the partial minute must still block the
	// slot starting at 11:00.
	interval := localInterval(monday, "10:00", "11:00")
	interval.End = interval.End.Add(30 * time.Second)

	res := e.ComputeAvailableSlots(monday, 30, mondaySchedule(), []domain.BookedInterval{interval})

	assert.NotContains(t, res.AvailableTimes, types.TimeString("11:00"))
	assert.Contains(t, res.AvailableTimes, types.TimeString("11:15"))
	// A whole-minute end keeps the boundary-touching slot free.
	exact := e.ComputeAvailableSlots(monday, 30, mondaySchedule(),
		[]domain.BookedInterval{localInterval(monday, "10:00", "11:00")})
	assert.Contains(t, exact.AvailableTimes, types.TimeString("11:00"))
}

func TestComputeAvailableSlotsLunchBreak(t *testing.T) {
	e := newTestEngine(t)
	schedule := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{{Start: "09:00", End: "19:00"}},
	}

	res := e.ComputeAvailableSlots(monday, 60, schedule, nil)

	assert.Contains(t, res.AllTimes, types.TimeString("12:00"), "ends exactly at lunch start")
	assert.Contains(t, res.AllTimes, types.TimeString("14:00"), "starts exactly at lunch end")
	for _, excluded := range times("12:15", "12:30", "12:45", "13:00", "13:15", "13:30", "13:45") {
		assert.NotContains(t, res.AllTimes, excluded, "%s would cross the lunch break", excluded)
	}
}

func TestComputeAvailableSlotsClosedWeekdayShortcut(t *testing.T) {
	e := newTestEngine(t)
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	// Even a schedule explicitly listing Sunday yields nothing.
	schedule := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Sunday},
		Hours: []domain.HourRange{{Start: "09:00", End: "19:00"}},
	}

	res := e.ComputeAvailableSlots(sunday, 30, schedule, nil)
	assert.Empty(t, res.AllTimes)
	assert.Empty(t, res.AvailableTimes)
}

func TestComputeAvailableSlotsClosedOrMissingSchedule(t *testing.T) {
	e := newTestEngine(t)

	res := e.ComputeAvailableSlots(monday, 30, nil, nil)
	assert.Empty(t, res.AvailableTimes, "nil schedule means no open hours")

	tuesdayOnly := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Tuesday},
		Hours: []domain.HourRange{{Start: "09:00", End: "19:00"}},
	}
	res = e.ComputeAvailableSlots(monday, 30, tuesdayOnly, nil)
	assert.Empty(t, res.AvailableTimes, "weekday not in open set")
}

func TestComputeAvailableSlotsBoundaryFit(t *testing.T) {
	e := newTestEngine(t)
	schedule := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{{Start: "09:00", End: "12:00"}},
	}

	// 180 minutes fills the range exactly once.
	res := e.ComputeAvailableSlots(monday, 180, schedule, nil)
	assert.Equal(t, times("09:00"), res.AvailableTimes)

	// 195 minutes no longer fits anywhere.
	res = e.ComputeAvailableSlots(monday, 195, schedule, nil)
	assert.Empty(t, res.AvailableTimes)
}

func TestComputeAvailableSlotsMidnightRangeEnd(t *testing.T) {
	e := newTestEngine(t)
	schedule := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{{Start: "22:00", End: "24:00"}},
	}

	res := e.ComputeAvailableSlots(monday, 60, schedule, nil)
	assert.Equal(t, times("22:00", "22:15", "22:30", "22:45", "23:00"), res.AvailableTimes,
		"24:00 is an exclusive end meaning local midnight")
}

func TestComputeAvailableSlotsUnsortedOverlappingRanges(t *testing.T) {
	e := newTestEngine(t)
	schedule := &domain.MonthlySchedule{
		Days: []time.Weekday{time.Monday},
		Hours: []domain.HourRange{
			{Start: "15:00", End: "18:00"},
			{Start: "14:00", End: "16:00"},
		},
	}

	res := e.ComputeAvailableSlots(monday, 60, schedule, nil)

	want := times(
		"14:00", "14:15", "14:30", "14:45", "15:00", "15:15", "15:30", "15:45",
		"16:00", "16:15", "16:30", "16:45", "17:00",
	)
	assert.Equal(t, want, res.AvailableTimes, "output is sorted and deduplicated")
}

func TestComputeAvailableSlotsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	booked := []domain.BookedInterval{
		localInterval(monday, "09:30", "10:00"),
		localInterval(monday, "15:00", "16:30"),
	}

	first := e.ComputeAvailableSlots(monday, 45, mondaySchedule(), booked)
	second := e.ComputeAvailableSlots(monday, 45, mondaySchedule(), booked)
	assert.Equal(t, first, second)
}

func TestComputeAvailableSlotsAvailabilityProperty(t *testing.T) {
	e := newTestEngine(t)
	duration := 45
	booked := []domain.BookedInterval{
		localInterval(monday, "09:20", "09:50"),
		localInterval(monday, "14:30", "15:15"),
		localInterval(monday, "16:00", "17:00"),
	}

	res := e.ComputeAvailableSlots(monday, duration, mondaySchedule(), booked)
	require.NotEmpty(t, res.AvailableTimes)

	y, m, d := monday.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, rome)

	for _, slot := range res.AvailableTimes {
		startMin, err := slot.Minutes()
		require.NoError(t, err)
		slotStart := dayStart.Add(time.Duration(startMin) * time.Minute)
		slotEnd := slotStart.Add(time.Duration(duration) * time.Minute)

		for _, b := range booked {
			overlap := slotStart.Before(b.End) && slotEnd.After(b.Start)
			assert.False(t, overlap, "slot %s overlaps booking %v", slot, b)
		}
	}
}

func TestComputeAvailableSlotsTimezoneConversion(t *testing.T) {
	// Same instants, different salon timezone: a booking at 08:00 UTC is
	// 10:00 in Rome but 08:00 in London.
	booked := []domain.BookedInterval{{
		Start: time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC),
	}}
	schedule := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{{Start: "09:00", End: "12:00"}},
	}

	romeEngine := NewEngine(Config{Timezone: rome, ClosedWeekday: time.Sunday})
	res := romeEngine.ComputeAvailableSlots(monday, 60, schedule, booked)
	assert.NotContains(t, res.AvailableTimes, types.TimeString("10:00"))
	assert.Contains(t, res.AvailableTimes, types.TimeString("11:00"))

	london := mustLoadLocation("Europe/London")
	londonEngine := NewEngine(Config{Timezone: london, ClosedWeekday: time.Sunday})
	res = londonEngine.ComputeAvailableSlots(monday, 60, schedule, booked)
	assert.NotContains(t, res.AvailableTimes, types.TimeString("09:00"))
	assert.Contains(t, res.AvailableTimes, types.TimeString("10:00"))
}

func TestComputeAvailableSlotsBookingSpanningMidnight(t *testing.T) {
	e := newTestEngine(t)
	schedule := &domain.MonthlySchedule{
		Days:  []time.Weekday{time.Monday},
		Hours: []domain.HourRange{{Start: "09:00", End: "11:00"}},
	}

	// Booking started the previous local evening and runs into this morning.
	y, m, d := monday.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, rome)
	booked := []domain.BookedInterval{{
		Start: dayStart.Add(-2 * time.Hour).UTC(),
		End:   dayStart.Add(9*time.Hour + 30*time.Minute).UTC(),
	}}

	res := e.ComputeAvailableSlots(monday, 30, schedule, booked)
	assert.Equal(t, times("09:30", "10:00", "10:30"), res.AvailableTimes)
}

func TestComputeAvailableSlotsNonPositiveDuration(t *testing.T) {
	e := newTestEngine(t)
	res := e.ComputeAvailableSlots(monday, 0, mondaySchedule(), nil)
	assert.Empty(t, res.AllTimes)
	res = e.ComputeAvailableSlots(monday, -15, mondaySchedule(), nil)
	assert.Empty(t, res.AllTimes)
}

func TestDayBounds(t *testing.T) {
	e := newTestEngine(t)
	start, end := e.DayBounds(monday)

	// Rome is UTC+2 on 2025-10-20.
	assert.Equal(t, time.Date(2025, 10, 19, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 10, 20, 22, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Monday, e.Weekday(monday))
}
