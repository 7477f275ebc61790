// Package payments exposes the checkout endpoint and the Stripe webhook.
package payments

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	paymentsService "github.com/beautylounge/salon-booking-service/internal/service/payments"
)

const (
	msgInvalidBookingID = "identifiant de réservation invalide"
	msgBookingNotFound  = "réservation introuvable"
	msgNotPayable       = "cette réservation n'attend pas de paiement"
	msgProviderError    = "le prestataire de paiement est indisponible"
)

// Stripe signs the webhook payload; reject events older than this.
const signatureTolerance = 5 * time.Minute

// Webhook bodies are small, cap reads defensively.
const maxWebhookBody = 1 << 20

// PaymentsService is the service behind the handlers.
type PaymentsService interface {
	CreateCheckoutSession(ctx context.Context, bookingID int64) (*paymentsService.CheckoutResponse, error)
	HandleEvent(ctx context.Context, event stripe.Event) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service       PaymentsService
	webhookSecret string
	logger        Logger
}

func NewHandler(service PaymentsService, webhookSecret string, logger Logger) *Handler {
	return &Handler{
		service:       service,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleCheckout POST /api/v1/bookings/{id}/checkout
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	session, err := h.service.CreateCheckoutSession(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, paymentsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, paymentsService.ErrNotPayable):
			handlers.RespondConflict(w, msgNotPayable)
		case errors.Is(err, paymentsService.ErrProvider):
			h.logger.Error("POST /bookings/{id}/checkout - Provider error for id=%d: %v", id, err)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderError)
		default:
			h.logger.Error("POST /bookings/{id}/checkout - Failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/checkout - Session opened for booking id=%d", id)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// HandleWebhook POST /api/v1/payments/webhook
// Stripe retries on any non-2xx answer, so persistent failures return 500.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecret == "" {
		h.logger.Error("POST /payments/webhook - Webhook secret is not configured")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEventWithTolerance(
		payload,
		r.Header.Get("Stripe-Signature"),
		h.webhookSecret,
		signatureTolerance,
	)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.service.HandleEvent(r.Context(), event); err != nil {
		h.logger.Error("POST /payments/webhook - Failed to process event id=%s type=%s: %v",
			event.ID, event.Type, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
