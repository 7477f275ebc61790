package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beautylounge/salon-booking-service/pkg/types"
)

func TestParseHourRanges(t *testing.T) {
	ranges, rejected := ParseHourRanges("09:00-12:00, 14:00-18:00")
	assert.Empty(t, rejected)
	assert.Equal(t, []HourRange{
		{Start: "09:00", End: "12:00"},
		{Start: "14:00", End: "18:00"},
	}, ranges)
}

func TestParseHourRangesMidnightEnd(t *testing.T) {
	ranges, rejected := ParseHourRanges("20:00-24:00")
	assert.Empty(t, rejected)
	assert.Equal(t, []HourRange{{Start: "20:00", End: "24:00"}}, ranges)
}

func TestParseHourRangesSkipsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing dash", input: "09:0012:00"},
		{name: "empty start", input: "-12:00"},
		{name: "empty end", input: "09:00-"},
		{name: "inverted", input: "14:00-12:00"},
		{name: "zero length", input: "10:00-10:00"},
		{name: "bad time", input: "9h-12h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, rejected := ParseHourRanges("09:00-12:00," + tt.input)
			assert.Equal(t, []HourRange{{Start: "09:00", End: "12:00"}}, ranges,
				"valid range must survive a malformed neighbour")
			assert.Equal(t, []string{tt.input}, rejected)
		})
	}
}

func TestMonthlyScheduleIsOpenOn(t *testing.T) {
	s := &MonthlySchedule{
		Month: 10,
		Year:  2025,
		Days:  []time.Weekday{time.Monday, time.Saturday},
		Hours: []HourRange{{Start: types.TimeString("09:00"), End: types.TimeString("19:00")}},
	}

	assert.True(t, s.IsOpenOn(time.Monday))
	assert.True(t, s.IsOpenOn(time.Saturday))
	assert.False(t, s.IsOpenOn(time.Sunday))
	assert.False(t, s.IsOpenOn(time.Wednesday))
}
