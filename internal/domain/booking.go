package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentMethod is how the customer chose to pay for a booking.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentWave PaymentMethod = "wave"
)

// Booking represents a salon appointment. StartTime and EndTime are absolute
// instants stored in UTC; the salon-local wall clock is derived from them
// through the configured timezone.
type Booking struct {
	ID         int64
	UserID     *int64 // nil for guest bookings
	MenuItemID int64
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus

	// Customer contact details captured at booking time
	CustomerFirstName string
	CustomerLastName  string
	CustomerEmail     string
	CustomerPhone     string

	PaymentMethod PaymentMethod
	PaymentStatus *string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	Notes *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Interval returns the occupied [start, end) instant range.
func (b *Booking) Interval() BookedInterval {
	return BookedInterval{Start: b.StartTime, End: b.EndTime}
}

// BookedInterval is a half-open [Start, End) instant range occupied by a
// non-cancelled booking.
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Intervals that
// merely touch at a boundary do not overlap.
func (i BookedInterval) Overlaps(other BookedInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// BookingsFilter narrows admin booking listings.
type BookingsFilter struct {
	MenuItemID      *int64
	StartDate       *time.Time // inclusive, start of period
	EndDate         *time.Time // inclusive, end of period
	Status          *BookingStatus
	IncludeInactive bool // include cancelled bookings
}
