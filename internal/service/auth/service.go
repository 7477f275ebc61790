// Package auth handles accounts and sessions: signup with email
// verification, signin, and the password reset flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/beautylounge/salon-booking-service/internal/domain"
	userRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/user"
	"github.com/beautylounge/salon-booking-service/internal/mailer"
	"github.com/beautylounge/salon-booking-service/internal/service/auth/models"
	"github.com/beautylounge/salon-booking-service/pkg/ptr"
)

const minPasswordLength = 8

// Config carries the auth tunables.
type Config struct {
	BcryptCost    int
	ResetTokenTTL time.Duration
	PublicBaseURL string
}

// Service manages accounts and sessions.
type Service struct {
	userRepo     UserRepository
	sessions     SessionStore
	mailer       Mailer
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the auth service.
func NewService(
	userRepository UserRepository,
	sessions SessionStore,
	authMailer Mailer,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.ResetTokenTTL == 0 {
		cfg.ResetTokenTTL = time.Hour
	}

	return &Service{
		userRepo:     userRepository,
		sessions:     sessions,
		mailer:       authMailer,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Signup registers an account, opens a session and sends the verification
// email.
func (s *Service) Signup(ctx context.Context, req *models.SignupRequest) (*models.SessionResponse, error) {
	s.logger.Info("Signup: registering %s", req.Email)

	if err := validateSignup(req); err != nil {
		s.logger.Warn("Signup: validation failed: %v", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("Signup: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Signup - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             normalizeEmail(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		PasswordHash:      string(hash),
		VerificationToken: ptr.Ptr(uuid.NewString()),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Signup: email %s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Signup: repository error: %v", err)
		return nil, fmt.Errorf("%w: Signup - repository error: %v", ErrInternal, err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("Signup: failed to open session for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Signup - open session: %v", ErrInternal, err)
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.PublicBaseURL, *user.VerificationToken)
	subject, body := mailer.VerificationEmail(user.FirstName, verifyURL)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Error("Signup: failed to send verification email to %s: %v", user.Email, err)
	}

	s.logger.Info("Signup: registered user id=%d", user.ID)
	return &models.SessionResponse{Token: token, User: models.FromDomainUser(user)}, nil
}

// Signin opens a session for valid credentials. The email must have been
// verified first.
func (s *Service) Signin(ctx context.Context, req *models.SigninRequest) (*models.SessionResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Info("Signin: %s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Signin: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Signin: repository error: %v", err)
		return nil, fmt.Errorf("%w: Signin - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Signin: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		s.logger.Warn("Signin: email not verified for user id=%d", user.ID)
		return nil, ErrEmailNotVerified
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error("Signin: failed to open session for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Signin - open session: %v", ErrInternal, err)
	}

	return &models.SessionResponse{Token: token, User: models.FromDomainUser(user)}, nil
}

// Logout revokes a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.Error("Logout: failed to revoke session: %v", err)
		return fmt.Errorf("%w: Logout - revoke session: %v", ErrInternal, err)
	}
	return nil
}

// GetUser fetches the account behind a session.
func (s *Service) GetUser(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetUser: repository error for id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUser - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

// VerifyEmail confirms the address behind a verification token.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := s.userRepo.VerifyEmail(ctx, token); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("VerifyEmail: unknown token")
			return ErrInvalidToken
		}
		s.logger.Error("VerifyEmail: repository error: %v", err)
		return fmt.Errorf("%w: VerifyEmail - repository error: %v", ErrInternal, err)
	}

	return nil
}

// RequestPasswordReset issues a reset token and mails it. An unknown email
// succeeds silently so the endpoint cannot be used to probe accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	s.logger.Info("RequestPasswordReset: %s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("RequestPasswordReset: unknown email %s", email)
			return nil
		}
		s.logger.Error("RequestPasswordReset: repository error: %v", err)
		return fmt.Errorf("%w: RequestPasswordReset - repository error: %v", ErrInternal, err)
	}

	token := uuid.NewString()
	expiry := s.timeProvider.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		s.logger.Error("RequestPasswordReset: failed to store token for user id=%d: %v", user.ID, err)
		return fmt.Errorf("%w: RequestPasswordReset - store token: %v", ErrInternal, err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.PublicBaseURL, token)
	subject, body := mailer.PasswordResetEmail(user.FirstName, resetURL, s.cfg.ResetTokenTTL)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.logger.Error("RequestPasswordReset: failed to send email to %s: %v", user.Email, err)
	}

	return nil
}

// ResetPassword sets a new password from a valid reset token.
func (s *Service) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("ResetPassword: unknown token")
			return ErrInvalidToken
		}
		s.logger.Error("ResetPassword: repository error: %v", err)
		return fmt.Errorf("%w: ResetPassword - repository error: %v", ErrInternal, err)
	}

	if user.ResetTokenExpiry == nil || s.timeProvider.Now().After(*user.ResetTokenExpiry) {
		s.logger.Warn("ResetPassword: expired token for user id=%d", user.ID)
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("ResetPassword: failed to hash password: %v", err)
		return fmt.Errorf("%w: ResetPassword - hash password: %v", ErrInternal, err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error("ResetPassword: failed to update password for user id=%d: %v", user.ID, err)
		return fmt.Errorf("%w: ResetPassword - update password: %v", ErrInternal, err)
	}

	s.logger.Info("ResetPassword: password updated for user id=%d", user.ID)
	return nil
}

func validateSignup(req *models.SignupRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}
	email := normalizeEmail(req.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
