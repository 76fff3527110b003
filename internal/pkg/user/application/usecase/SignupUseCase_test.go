package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/port"
)

// memUserRepo is an in-memory UserRepository for use case tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User // keyed by id
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]user.User)}
}

func (r *memUserRepo) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	r.users[u.ID] = u
	r.mu.Unlock()
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := u
	return &found, nil
}

func (r *memUserRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", time.Hour)
}

func TestSignupCreatesAccountAndToken(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uc := NewSignupUseCase(repo, testIssuer())

	u, token, err := uc.Execute(ctx, SignupInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The stored hash verifies against the original password and is not the
	// plaintext itself.
	stored, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))

	claims, err := testIssuer().Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uc := NewSignupUseCase(repo, testIssuer())

	_, _, err := uc.Execute(ctx, SignupInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	// Same address in a different case still collides.
	_, _, err = uc.Execute(ctx, SignupInput{Email: "ALICE@example.com", Password: "othersecret"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	uc := NewSignupUseCase(newMemUserRepo(), testIssuer())

	_, _, err := uc.Execute(context.Background(), SignupInput{Email: "nonsense", Password: "supersecret"})
	require.ErrorIs(t, err, user.ErrInvalidEmail)

	_, _, err = uc.Execute(context.Background(), SignupInput{Email: "alice@example.com", Password: "short"})
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	issuer := testIssuer()
	signup := NewSignupUseCase(repo, issuer)
	login := NewLoginUseCase(repo, issuer)

	created, _, err := signup.Execute(ctx, SignupInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	u, token, err := login.Execute(ctx, LoginInput{Email: "Alice@Example.com ", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, created.ID, u.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	issuer := testIssuer()
	signup := NewSignupUseCase(repo, issuer)
	login := NewLoginUseCase(repo, issuer)

	_, _, err := signup.Execute(ctx, SignupInput{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	// Wrong password and unknown account fail identically.
	_, _, err = login.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "wrongpass1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = login.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
