// Package schedule exposes the back-office monthly schedule endpoints.
package schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	scheduleService "github.com/beautylounge/salon-booking-service/internal/service/schedule"
	"github.com/beautylounge/salon-booking-service/internal/service/schedule/models"
)

const (
	msgInvalidBody      = "corps de requête invalide"
	msgInvalidMonthYear = "paramètres month et year invalides"
	msgScheduleNotFound = "aucun planning pour ce mois"
)

// ScheduleService is the service behind the handlers.
type ScheduleService interface {
	Upsert(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error)
	Get(ctx context.Context, month, year int) (*models.ScheduleResponse, error)
	Delete(ctx context.Context, month, year int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleGet GET /api/v1/admin/schedule
// Query params: month, year (required)
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYear(w, r)
	if !ok {
		return
	}

	sched, err := h.service.Get(r.Context(), month, year)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgScheduleNotFound)
		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidMonthYear)
		default:
			h.logger.Error("GET /admin/schedule - Failed for %d/%d: %v", month, year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sched)
}

// HandleUpsert PUT /api/v1/admin/schedule
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	sched, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		if errors.Is(err, scheduleService.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
		h.logger.Error("PUT /admin/schedule - Failed for %d/%d: %v", req.Month, req.Year, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/schedule - Saved schedule %d/%d", req.Month, req.Year)
	handlers.RespondJSON(w, http.StatusOK, sched)
}

// HandleDelete DELETE /api/v1/admin/schedule
// Query params: month, year (required)
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYear(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), month, year); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrScheduleNotFound):
			handlers.RespondNotFound(w, msgScheduleNotFound)
		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidMonthYear)
		default:
			h.logger.Error("DELETE /admin/schedule - Failed for %d/%d: %v", month, year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/schedule - Removed schedule %d/%d", month, year)
	w.WriteHeader(http.StatusNoContent)
}

func monthYear(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	if errM != nil || errY != nil {
		handlers.RespondBadRequest(w, msgInvalidMonthYear)
		return 0, 0, false
	}
	return month, year, true
}
