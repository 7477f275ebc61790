package domain

import "time"

// User is a registered customer or back-office admin.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	IsAdmin      bool

	EmailVerified     bool
	VerificationToken *string

	ResetToken       *string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
