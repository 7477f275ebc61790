// Package middleware holds the cross-cutting HTTP middleware: session
// authentication and request metrics.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/beautylounge/salon-booking-service/internal/api/handlers"
	"github.com/beautylounge/salon-booking-service/internal/domain"
	"github.com/beautylounge/salon-booking-service/internal/infra/sessions"
)

// SessionCookieName is the login session cookie.
const SessionCookieName = "salon_session"

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// SessionStore resolves session tokens.
type SessionStore interface {
	Get(ctx context.Context, token string) (int64, error)
}

// UserRepository loads the account behind a session.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger logs middleware events.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth authenticates requests from the session cookie.
type Auth struct {
	sessions SessionStore
	users    UserRepository
	logger   Logger
}

// NewAuth creates the auth middleware.
func NewAuth(store SessionStore, users UserRepository, logger Logger) *Auth {
	return &Auth{sessions: store, users: users, logger: logger}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// TokenFromContext returns the session token behind the request, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// Optional resolves the session when the cookie is present but lets
// anonymous requests through. Guest booking depends on this.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, ok := a.resolve(r.Context(), cookie.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Required rejects requests without a valid session.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			handlers.RespondUnauthorized(w, "authentification requise")
			return
		}

		ctx, ok := a.resolve(r.Context(), cookie.Value)
		if !ok {
			handlers.RespondUnauthorized(w, "session invalide ou expirée")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects requests whose session does not belong to an admin.
func (a *Auth) AdminOnly(next http.Handler) http.Handler {
	return a.Required(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			handlers.RespondForbidden(w, "accès réservé aux administrateurs")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Auth) resolve(ctx context.Context, token string) (context.Context, bool) {
	userID, err := a.sessions.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, sessions.ErrSessionNotFound) {
			a.logger.Error("auth: session lookup failed: %v", err)
		}
		return ctx, false
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		a.logger.Warn("auth: session user id=%d not found: %v", userID, err)
		return ctx, false
	}

	ctx = context.WithValue(ctx, userKey, user)
	ctx = context.WithValue(ctx, tokenKey, token)
	return ctx, true
}
