package auth

import (
	"context"
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// SessionStore issues and revokes login sessions.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, token string) error
}

// Mailer delivers verification and reset emails. Failures never fail the
// operation that triggered them.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// TimeProvider supplies the current time, swappable in tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger logs service progress.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
