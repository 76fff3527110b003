package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Now()
	u, err := NewUser("  Alice@Example.COM ", "supersecret", now)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email, "email is trimmed and lowercased")
	assert.Empty(t, u.PasswordHash, "the domain never stores the plaintext")
	assert.Equal(t, now, u.CreatedAt)
}

func TestNewUserValidation(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"missing email", "", "supersecret", ErrInvalidEmail},
		{"not an address", "nonsense", "supersecret", ErrInvalidEmail},
		{"short password", "alice@example.com", "short", ErrPasswordTooWeak},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.email, tc.password, time.Now())
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
