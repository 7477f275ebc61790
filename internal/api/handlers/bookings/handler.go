// Package bookings exposes booking lookups, cancellation and the back-office
// booking operations.
package bookings

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	"github.com/beautylounge/salon-booking-service/internal/api/middleware"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	bookingsService "github.com/beautylounge/salon-booking-service/internal/service/bookings"
	"github.com/beautylounge/salon-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "identifiant de réservation invalide"
	msgInvalidBody      = "corps de requête invalide"
	msgInvalidDate      = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidStatus    = "statut invalide"
	msgBookingNotFound  = "réservation introuvable"
	msgAccessDenied     = "accès refusé"
	msgCannotCancel     = "cette réservation ne peut pas être annulée"
	msgSlotTaken        = "ce créneau n'est plus disponible"
)

// BookingsService is the service behind the handlers.
type BookingsService interface {
	GetByID(ctx context.Context, id, requesterID int64, isAdmin bool) (*models.BookingResponse, error)
	GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error)
	ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	Cancel(ctx context.Context, id, requesterID int64, isAdmin bool) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Reschedule(ctx context.Context, req *models.RescheduleRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleGet GET /api/v1/bookings/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r, h.logger)
	if !ok {
		return
	}
	user, _ := middleware.UserFromContext(r.Context())

	booking, err := h.service.GetByID(r.Context(), id, user.ID, user.IsAdmin)
	if err != nil {
		h.respondServiceError(w, "GET /bookings/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleCancel DELETE /api/v1/bookings/{id}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r, h.logger)
	if !ok {
		return
	}
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.service.Cancel(r.Context(), id, user.ID, user.IsAdmin); err != nil {
		h.respondServiceError(w, "DELETE /bookings/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMyBookings GET /api/v1/me/bookings
// Query params: status (optional)
func (h *Handler) HandleMyBookings(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	req := &models.GetUserBookingsRequest{UserID: user.ID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetUserBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /me/bookings - Failed for user=%d: %v", user.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleAdminList GET /api/v1/admin/bookings
// Query params: serviceId, from, to (YYYY-MM-DD), status, includeInactive
func (h *Handler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}
	query := r.URL.Query()

	if raw := query.Get("serviceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, "serviceId invalide")
			return
		}
		req.ServiceID = &id
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// The upper bound is exclusive; include the whole "to" day.
		end := to.AddDate(0, 0, 1)
		req.EndDate = &end
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	list, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// HandleAdminUpdateStatus PATCH /api/v1/admin/bookings/{id}/status
func (h *Handler) HandleAdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r, h.logger)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Updated: id=%d, status=%s", id, req.Status)
	w.WriteHeader(http.StatusNoContent)
}

type rescheduleRequest struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
}

// HandleAdminReschedule POST /api/v1/admin/bookings/{id}/reschedule
func (h *Handler) HandleAdminReschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r, h.logger)
	if !ok {
		return
	}

	var req rescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	booking, err := h.service.Reschedule(r.Context(), &models.RescheduleRequest{
		BookingID: id,
		Date:      date,
		StartTime: req.StartTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrSlotUnavailable):
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, bookingsService.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)
		default:
			h.logger.Error("POST /admin/bookings/{id}/reschedule - Failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/reschedule - Moved: id=%d to %s %s", id, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, bookingsService.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, bookingsService.ErrAccessDenied):
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, bookingsService.ErrCannotCancel):
		handlers.RespondConflict(w, msgCannotCancel)
	default:
		h.logger.Error("%s - Failed for id=%d: %v", route, id, err)
		handlers.RespondInternalError(w)
	}
}

func bookingID(w http.ResponseWriter, r *http.Request, logger Logger) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		logger.Warn("bookings - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return id, true
}
