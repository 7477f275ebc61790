package domain

import "time"

// Slot generation constants
const (
	// SlotGranularityMinutes is the fixed step between candidate slot starts.
	SlotGranularityMinutes = 15

	// MinServiceDurationMinutes and MaxServiceDurationMinutes bound menu item durations.
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480
)

// Salon defaults, overridable via configuration
const (
	DefaultTimezone      = "Europe/Rome"
	DefaultLunchStart    = "13:00"
	DefaultLunchEnd      = "14:00"
	DefaultClosedWeekday = time.Sunday
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength = 500
	MinMonth       = 1
	MaxMonth       = 12
	MinYear        = 2020
	MaxYear        = 2100
)

// ActiveStatuses are the statuses counted when checking slot availability.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
