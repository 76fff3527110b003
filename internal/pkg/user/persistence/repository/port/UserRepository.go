package repository

import (
	"context"
	"errors"

	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
)

// ErrNotFound signals a lookup miss in a typed way so callers can tell it
// apart from transport errors.
var ErrNotFound = errors.New("user repository: not found")

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
}
