package usecase

import (
	"context"
	"errors"
	"fmt"

	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/port"
)

// ErrUserNotFound is returned when the requested account does not exist.
var ErrUserNotFound = errors.New("user use case: user not found")

// GetUserUseCase fetches a single account by id.
type GetUserUseCase struct {
	Repo repository.UserRepository
}

func NewGetUserUseCase(repo repository.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{Repo: repo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id string) (*user.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	u, err := uc.Repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return u, nil
}
