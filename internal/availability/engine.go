// Package availability computes bookable time slots for a salon day from the
// admin-configured monthly schedule and the existing bookings. The engine is
// pure: no I/O, deterministic output for identical inputs.
package availability

import (
	"sort"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

const minutesPerDay = 24 * 60

// Config carries the salon-wide rules the engine applies on top of the
// monthly schedule. The timezone is explicit so tests can exercise several
// zones deterministically.
type Config struct {
	Timezone      *time.Location
	ClosedWeekday time.Weekday
	LunchStart    types.TimeString
	LunchEnd      types.TimeString
}

// Engine computes slot availability. Safe for concurrent use.
type Engine struct {
	loc           *time.Location
	closedWeekday time.Weekday
	lunchStart    int // minutes since local midnight
	lunchEnd      int
	granularity   int
}

// NewEngine builds an engine from cfg, falling back to the salon defaults for
// any zero field.
func NewEngine(cfg Config) *Engine {
	loc := cfg.Timezone
	if loc == nil {
		loc, _ = time.LoadLocation(domain.DefaultTimezone)
	}

	lunchStart := cfg.LunchStart
	lunchEnd := cfg.LunchEnd
	if lunchStart.IsZero() || lunchEnd.IsZero() {
		lunchStart = types.TimeString(domain.DefaultLunchStart)
		lunchEnd = types.TimeString(domain.DefaultLunchEnd)
	}

	startMin, err1 := lunchStart.Minutes()
	endMin, err2 := lunchEnd.Minutes()
	if err1 != nil || err2 != nil || endMin <= startMin {
		startMin, _ = types.TimeString(domain.DefaultLunchStart).Minutes()
		endMin, _ = types.TimeString(domain.DefaultLunchEnd).Minutes()
	}

	return &Engine{
		loc:           loc,
		closedWeekday: cfg.ClosedWeekday,
		lunchStart:    startMin,
		lunchEnd:      endMin,
		granularity:   domain.SlotGranularityMinutes,
	}
}

// Timezone returns the salon timezone the engine operates in.
func (e *Engine) Timezone() *time.Location {
	return e.loc
}

// DayBounds returns the UTC instants of local midnight and the following
// local midnight for the given calendar date. Callers use these as the range
// keys for booking queries, so a client's UTC rounding can never shift the
// requested day.
func (e *Engine) DayBounds(date time.Time) (start, end time.Time) {
	y, m, d := date.Date()
	localStart := time.Date(y, m, d, 0, 0, 0, 0, e.loc)
	return localStart.UTC(), localStart.AddDate(0, 0, 1).UTC()
}

// Weekday returns the salon-local weekday of the given calendar date.
func (e *Engine) Weekday(date time.Time) time.Weekday {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc).Weekday()
}

// Result is the slot grid for one day. AllTimes holds every candidate start
// within open hours that fits the service before closing and outside the
// lunch break; AvailableTimes is the subset not colliding with a booking.
// Both are ascending, formatted as zero-padded local "HH:MM".
type Result struct {
	AllTimes       []types.TimeString
	AvailableTimes []types.TimeString
}

// ComputeAvailableSlots computes the bookable start times for a service of
// serviceDuration minutes on the given calendar date.
//
// Every 15-minute-aligned candidate start within open hours is emitted in
// AllTimes unless [start, start+duration) crosses the lunch break or a range
// end; a candidate lands in AvailableTimes if it additionally intersects no
// booked interval (half-open overlap test). A closed weekday, a nil schedule
// or a weekday missing from the schedule all yield an empty result, never an
// error.
func (e *Engine) ComputeAvailableSlots(
	date time.Time,
	serviceDuration int,
	schedule *domain.MonthlySchedule,
	booked []domain.BookedInterval,
) Result {
	empty := Result{AllTimes: []types.TimeString{}, AvailableTimes: []types.TimeString{}}

	if serviceDuration <= 0 {
		return empty
	}

	// The fixed closed day wins over any schedule configuration.
	if e.Weekday(date) == e.closedWeekday {
		return empty
	}

	if schedule == nil || !schedule.IsOpenOn(e.Weekday(date)) {
		return empty
	}

	bookedMins := e.bookedMinutes(date, booked)

	// Stored ranges are not guaranteed sorted or disjoint; collect candidate
	// starts into a set and sort once.
	all := make(map[int]bool)
	available := make(map[int]bool)

	for _, hr := range schedule.Hours {
		startMin, err := hr.Start.Minutes()
		if err != nil {
			continue
		}
		endMin, err := hr.End.Minutes()
		if err != nil || endMin <= startMin {
			continue
		}

		for m := startMin; m+serviceDuration <= endMin; m += e.granularity {
			slotEnd := m + serviceDuration
			if intersects(m, slotEnd, e.lunchStart, e.lunchEnd) {
				continue
			}
			all[m] = true
			if !anyBooked(bookedMins, m, slotEnd) {
				available[m] = true
			}
		}
	}

	return Result{
		AllTimes:       sortedTimes(all),
		AvailableTimes: sortedTimes(available),
	}
}

// minuteInterval is a booked range projected onto minutes of the local day.
type minuteInterval struct {
	start int
	end   int
}

// bookedMinutes converts absolute booked intervals to minutes since the local
// midnight of date, clamped to the day. Intervals entirely outside the day
// are dropped.
func (e *Engine) bookedMinutes(date time.Time, booked []domain.BookedInterval) []minuteInterval {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, e.loc)

	out := make([]minuteInterval, 0, len(booked))
	for _, b := range booked {
		// Start truncates down and end rounds up, so a partial minute still
		// blocks every slot it touches.
		startMin := int(b.Start.Sub(dayStart) / time.Minute)
		endDur := b.End.Sub(dayStart)
		endMin := int(endDur / time.Minute)
		if endDur > 0 && endDur%time.Minute != 0 {
			endMin++
		}

		if endMin <= 0 || startMin >= minutesPerDay || endMin <= startMin {
			continue
		}
		if startMin < 0 {
			startMin = 0
		}
		if endMin > minutesPerDay {
			endMin = minutesPerDay
		}
		out = append(out, minuteInterval{start: startMin, end: endMin})
	}
	return out
}

func anyBooked(booked []minuteInterval, start, end int) bool {
	for _, b := range booked {
		if intersects(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}

// intersects is the half-open interval overlap test: touching boundaries do
// not intersect.
func intersects(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func sortedTimes(set map[int]bool) []types.TimeString {
	mins := make([]int, 0, len(set))
	for m := range set {
		mins = append(mins, m)
	}
	sort.Ints(mins)

	out := make([]types.TimeString, 0, len(mins))
	for _, m := range mins {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			continue
		}
		out = append(out, ts)
	}
	return out
}
