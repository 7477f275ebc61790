// Package auth exposes signup, signin and the account endpoints. The session
// token travels in an HttpOnly cookie.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	"github.com/beautylounge/salon-booking-service/internal/api/middleware"
	authService "github.com/beautylounge/salon-booking-service/internal/service/auth"
	"github.com/beautylounge/salon-booking-service/internal/service/auth/models"
)

const (
	msgInvalidBody        = "corps de requête invalide"
	msgInvalidInput       = "données invalides"
	msgEmailTaken         = "un compte existe déjà avec cet email"
	msgInvalidCredentials = "email ou mot de passe incorrect"
	msgEmailNotVerified   = "veuillez vérifier votre adresse email avant de vous connecter"
	msgInvalidToken       = "lien invalide ou expiré"
)

// AuthService is the service behind the handlers.
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.SessionResponse, error)
	Signin(ctx context.Context, req *models.SigninRequest) (*models.SessionResponse, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID int64) (*models.UserResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config carries the cookie settings.
type Config struct {
	CookieSecure bool
	CookieTTL    time.Duration
}

type Handler struct {
	service AuthService
	cfg     Config
	logger  Logger
}

func NewHandler(service AuthService, cfg Config, logger Logger) *Handler {
	return &Handler{service: service, cfg: cfg, logger: logger}
}

// HandleSignup POST /api/v1/auth/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	session, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)
		case errors.Is(err, authService.ErrInvalidInput):
			h.logger.Warn("POST /auth/signup - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /auth/signup - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.setSessionCookie(w, session.Token)
	h.logger.Info("POST /auth/signup - Registered user id=%d", session.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, session.User)
}

// HandleSignin POST /api/v1/auth/signin
func (h *Handler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req models.SigninRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	session, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials):
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		case errors.Is(err, authService.ErrEmailNotVerified):
			handlers.RespondForbidden(w, msgEmailNotVerified)
		default:
			h.logger.Error("POST /auth/signin - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.setSessionCookie(w, session.Token)
	h.logger.Info("POST /auth/signin - Opened session for user id=%d", session.User.ID)
	handlers.RespondJSON(w, http.StatusOK, session.User)
}

// HandleLogout POST /api/v1/auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.TokenFromContext(r.Context()); ok {
		if err := h.service.Logout(r.Context(), token); err != nil {
			h.logger.Error("POST /auth/logout - Failed to revoke session: %v", err)
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe GET /api/v1/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	resp, err := h.service.GetUser(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("GET /auth/me - Failed for user id=%d: %v", user.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

// HandleVerifyEmail POST /api/v1/auth/verify-email
func (h *Handler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.VerifyEmail(r.Context(), req.Token); err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidToken):
			handlers.RespondBadRequest(w, msgInvalidToken)
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)
		default:
			h.logger.Error("POST /auth/verify-email - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type requestResetRequest struct {
	Email string `json:"email"`
}

// HandleRequestReset POST /api/v1/auth/request-reset
// Always answers 204 so the endpoint cannot be used to probe accounts.
func (h *Handler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error("POST /auth/request-reset - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleResetPassword POST /api/v1/auth/reset-password
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidToken):
			handlers.RespondBadRequest(w, msgInvalidToken)
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /auth/reset-password - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
