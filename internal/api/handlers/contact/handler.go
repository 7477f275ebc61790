// Package contact exposes the public contact form endpoint.
package contact

import (
	"context"
	"net/http"
	"strings"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	"github.com/beautylounge/salon-booking-service/internal/mailer"
)

const (
	msgInvalidBody  = "corps de requête invalide"
	msgInvalidInput = "nom, email et message sont obligatoires"
	msgSendFailed   = "impossible d'envoyer votre message, réessayez plus tard"
)

const maxMessageLength = 4000

// Mailer delivers the notification to the salon inbox.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	mailer     Mailer
	adminEmail string
	logger     Logger
}

func NewHandler(contactMailer Mailer, adminEmail string, logger Logger) *Handler {
	return &Handler{
		mailer:     contactMailer,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

// Handle POST /api/v1/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" ||
		!strings.Contains(req.Email, "@") || len(req.Message) > maxMessageLength {
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	subject, body := mailer.ContactNotification(req.Name, req.Email, req.Topic, req.Message)
	if err := h.mailer.Send(r.Context(), h.adminEmail, subject, body); err != nil {
		h.logger.Error("POST /contact - Failed to forward message from %s: %v", req.Email, err)
		handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)
		return
	}

	h.logger.Info("POST /contact - Message forwarded from %s", req.Email)
	w.WriteHeader(http.StatusNoContent)
}
