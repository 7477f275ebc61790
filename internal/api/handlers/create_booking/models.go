package create_booking

import (
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	createBooking "github.com/beautylounge/salon-booking-service/internal/usecase/create_booking"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

// CreateBookingRequest is the HTTP request model.
type CreateBookingRequest struct {
	Date          string  `json:"date"`      // YYYY-MM-DD
	StartTime     string  `json:"startTime"` // HH:MM
	ServiceID     int64   `json:"serviceId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	PaymentMethod string  `json:"paymentMethod"` // card | wave
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse is the HTTP response model.
type BookingResponse struct {
	ID            int64   `json:"id"`
	ServiceID     int64   `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
}

// ToUseCaseRequest converts the HTTP request. The authenticated user id is
// nil for guest bookings.
func (r *CreateBookingRequest) ToUseCaseRequest(userID *int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:              date,
		StartTime:         types.TimeString(r.StartTime),
		ServiceID:         r.ServiceID,
		UserID:            userID,
		CustomerFirstName: r.FirstName,
		CustomerLastName:  r.LastName,
		CustomerEmail:     r.Email,
		CustomerPhone:     r.Phone,
		PaymentMethod:     domain.PaymentMethod(r.PaymentMethod),
		Notes:             r.Notes,
	}, nil
}

// FromUseCaseResponse converts the usecase response, rendering times in loc.
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	b := resp.Booking
	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	return &BookingResponse{
		ID:            b.ID,
		ServiceID:     b.MenuItemID,
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		Date:          start.Format(domain.DateFormat),
		StartTime:     start.Format(domain.TimeFormat),
		EndTime:       end.Format(domain.TimeFormat),
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
	}
}
