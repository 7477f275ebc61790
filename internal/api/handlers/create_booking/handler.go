package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	"github.com/beautylounge/salon-booking-service/internal/api/middleware"
	createBooking "github.com/beautylounge/salon-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidBody     = "corps de requête invalide"
	msgInvalidDate     = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidInput    = "données de réservation invalides"
	msgServiceNotFound = "prestation introuvable"
	msgPastDate        = "ce créneau est déjà passé"
	msgSalonClosed     = "le salon est fermé à cette date"
	msgSlotTaken       = "ce créneau n'est plus disponible"
)

type Handler struct {
	useCase CreateBookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Guests can book; a logged-in session attaches the booking to the account.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	var userID *int64
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		userID = &user.ID
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Past slot: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /bookings - Salon closed: date=%s", req.Date)
			handlers.RespondConflict(w, msgSalonClosed)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, service_id=%d, date=%s, time=%s",
		result.Booking.ID, req.ServiceID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.loc))
}
