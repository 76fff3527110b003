package usecase

import (
	"context"
	"fmt"

	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/port"
)

// ListUsersUseCase returns all registered accounts for the contact picker.
type ListUsersUseCase struct {
	Repo repository.UserRepository
}

func NewListUsersUseCase(repo repository.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{Repo: repo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]user.User, error) {
	users, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
