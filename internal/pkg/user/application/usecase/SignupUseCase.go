package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/port"
)

// SignupInput carries the registration form fields.
type SignupInput struct {
	Email    string
	Password string
}

// SignupUseCase creates an account with a bcrypt-hashed password and returns a
// signed access token so the client is logged in immediately.
type SignupUseCase struct {
	Repo   repository.UserRepository
	Issuer *auth.TokenIssuer
}

func NewSignupUseCase(repo repository.UserRepository, issuer *auth.TokenIssuer) *SignupUseCase {
	return &SignupUseCase{Repo: repo, Issuer: issuer}
}

// Execute returns the new account and its access token.
func (uc *SignupUseCase) Execute(ctx context.Context, in SignupInput) (*user.User, string, error) {
	u, err := user.NewUser(in.Email, in.Password, time.Now())
	if err != nil {
		return nil, "", err
	}

	if existing, err := uc.Repo.FindByEmail(ctx, u.Email); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	} else if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("user use case: hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := uc.Repo.Create(ctx, *u); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	token, err := uc.Issuer.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("user use case: sign token: %w", err)
	}
	return u, token, nil
}
