// Package models holds the booking service request and response shapes.
package models

import (
	"errors"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// ErrInvalidStatus is returned for an unknown status string.
var ErrInvalidStatus = errors.New("invalid booking status")

// GetUserBookingsRequest lists a customer's own bookings.
type GetUserBookingsRequest struct {
	UserID int64
	Status *string
}

// ListBookingsRequest is the admin listing filter.
type ListBookingsRequest struct {
	ServiceID       *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter converts the request into the repository filter.
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		MenuItemID:      r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// RescheduleRequest moves a booking to a new slot.
type RescheduleRequest struct {
	BookingID int64
	Date      time.Time
	StartTime string // salon-local "HH:MM"
}

// BookingResponse is one booking as exposed over the API. Times are
// formatted in the salon timezone.
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        *int64  `json:"userId,omitempty"`
	ServiceID     int64   `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	Date          string  `json:"date"`      // "2025-10-20"
	StartTime     string  `json:"startTime"` // "10:00"
	EndTime       string  `json:"endTime"`   // "11:00"
	Status        string  `json:"status"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// BookingListResponse wraps a booking list.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking converts a domain booking, rendering times in loc.
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceID:     b.MenuItemID,
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice,
		Date:          start.Format(domain.DateFormat),
		StartTime:     start.Format(domain.TimeFormat),
		EndTime:       end.Format(domain.TimeFormat),
		Status:        string(b.Status),
		FirstName:     b.CustomerFirstName,
		LastName:      b.CustomerLastName,
		Email:         b.CustomerEmail,
		Phone:         b.CustomerPhone,
		PaymentMethod: string(b.PaymentMethod),
		PaymentStatus: b.PaymentStatus,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainBookingList converts a booking slice.
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b, loc))
	}
	return &BookingListResponse{Bookings: out, Total: len(out)}
}

// ToDomainBookingStatus parses a status string.
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
