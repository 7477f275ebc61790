package get_availabilities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	getAvailabilities "github.com/beautylounge/salon-booking-service/internal/usecase/get_availabilities"
)

const (
	msgMissingServiceID = "le paramètre serviceId est obligatoire"
	msgInvalidServiceID = "serviceId invalide"
	msgMissingDate      = "le paramètre date est obligatoire"
	msgInvalidDate      = "format de date invalide, attendu YYYY-MM-DD"
	msgServiceNotFound  = "prestation introuvable"
)

type Handler struct {
	useCase GetAvailabilitiesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilitiesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availabilities
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availabilities - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availabilities - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availabilities - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /availabilities - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailabilities.ErrServiceNotFound):
			h.logger.Warn("GET /availabilities - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailabilities.ErrInvalidInput):
			h.logger.Warn("GET /availabilities - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /availabilities - Failed to compute slots: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availabilities - Slots computed: service_id=%d, date=%s, available=%d",
		serviceID, dateStr, len(result.AvailableTimes))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
