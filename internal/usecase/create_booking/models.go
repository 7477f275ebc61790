package create_booking

import (
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

// Request carries the slot and customer details for a new booking.
type Request struct {
	Date      time.Time        // calendar date, time-of-day ignored
	StartTime types.TimeString // salon-local "HH:MM"
	ServiceID int64

	UserID *int64 // nil for guest bookings

	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
	CustomerPhone     string

	PaymentMethod domain.PaymentMethod
	Notes         *string
}

// Response wraps the stored booking.
type Response struct {
	Booking *domain.Booking
}
