package get_availabilities

import (
	"time"

	"github.com/beautylounge/salon-booking-service/pkg/types"
)

// Request carries the day and service the caller wants slots for.
type Request struct {
	Date      time.Time // calendar date, time-of-day ignored
	ServiceID int64
}

// Response is the slot grid for the requested day. AllTimes holds every
// start time within open hours that fits the service; AvailableTimes is the
// subset free of booking conflicts. Both are ascending salon-local "HH:MM".
type Response struct {
	Date           time.Time
	ServiceID      int64
	AllTimes       []types.TimeString
	AvailableTimes []types.TimeString
}
