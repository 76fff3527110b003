package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Domain-level errors for account behaviors
var (
	ErrInvalidEmail    = errors.New("user: invalid email address")
	ErrPasswordTooWeak = errors.New("user: password must be at least 8 characters")
)

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// NewUser validates the email and plaintext password shape and produces an
// account with a fresh id. Hashing the password is the application layer's
// job; the domain only checks it is acceptable.
func NewUser(email, password string, now time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooWeak
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: now,
	}, nil
}
