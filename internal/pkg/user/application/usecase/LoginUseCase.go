package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/port"
)

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string
	Password string
}

// LoginUseCase verifies credentials and issues an access token.
type LoginUseCase struct {
	Repo   repository.UserRepository
	Issuer *auth.TokenIssuer
}

func NewLoginUseCase(repo repository.UserRepository, issuer *auth.TokenIssuer) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Issuer: issuer}
}

// Execute returns the account and its access token.
func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*user.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := uc.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.Issuer.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("user use case: sign token: %w", err)
	}
	return u, token, nil
}
