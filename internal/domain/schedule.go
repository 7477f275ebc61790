package domain

import (
	"strings"
	"time"

	"github.com/beautylounge/salon-booking-service/pkg/types"
)

// HourRange is an open-hours range of the salon day. Start is inclusive,
// End exclusive. End may be "24:00", meaning midnight of the following day.
type HourRange struct {
	Start types.TimeString
	End   types.TimeString
}

// MonthlySchedule is the admin-configured availability for one (month, year):
// the weekdays the salon is open plus the open-hour ranges that apply to every
// open day of that month. At most one record exists per (month, year).
type MonthlySchedule struct {
	ID    int64
	Month int
	Year  int
	Days  []time.Weekday
	Hours []HourRange

	// Raw delimited strings as stored; kept for wire compatibility with the
	// admin endpoints.
	AvailableDays  string
	AvailableHours string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenOn reports whether the schedule lists w as an open weekday.
func (s *MonthlySchedule) IsOpenOn(w time.Weekday) bool {
	for _, d := range s.Days {
		if d == w {
			return true
		}
	}
	return false
}

// ParseHourRanges parses a comma-separated list of "HH:MM-HH:MM" ranges.
// Malformed entries (missing dash, empty or unparseable endpoints, end not
// after start) are collected in rejected rather than failing the list.
func ParseHourRanges(csv string) (ranges []HourRange, rejected []string) {
	for _, token := range strings.Split(csv, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		startStr, endStr, ok := strings.Cut(token, "-")
		if !ok {
			rejected = append(rejected, token)
			continue
		}

		start, err := types.NewTimeStringFromString(startStr)
		if err != nil {
			rejected = append(rejected, token)
			continue
		}
		end, err := types.NewTimeStringFromString(endStr)
		if err != nil {
			rejected = append(rejected, token)
			continue
		}

		if !end.IsAfter(start) {
			rejected = append(rejected, token)
			continue
		}

		ranges = append(ranges, HourRange{Start: start, End: end})
	}
	return ranges, rejected
}
