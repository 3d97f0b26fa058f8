package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/domain"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

type mockUserRepo struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func emptyUserRepo() *mockUserRepo {
	return &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = "user-1"
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		GetByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
}

func newIdentityService(repo *mockUserRepo) *IdentityService {
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}}
	return NewIdentityService(cfg, IdentityDependencies{UserRepo: repo})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores verifier, not the password", func(t *testing.T) {
		var persisted *domain.User
		repo := emptyUserRepo()
		repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = "user-1"
			persisted = user
			return nil
		}

		user, err := newIdentityService(repo).Register(ctx, "alice", "secret1", "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, persisted)

		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "secret1", persisted.PasswordHash)
		assert.NoError(t, auth.ComparePassword(persisted.PasswordHash, "secret1"))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := newIdentityService(emptyUserRepo())
		cases := []struct {
			name               string
			username, password string
			email              string
		}{
			{"short username", "ab", "secret1", "a@x.com"},
			{"long username", strings.Repeat("a", 51), "secret1", "a@x.com"},
			{"bad email", "alice", "secret1", "not-an-email"},
			{"short password", "alice", "12345", "a@x.com"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tc.username, tc.password, tc.email)
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
			})
		}
	})

	t.Run("duplicate username fails even with distinct email", func(t *testing.T) {
		repo := emptyUserRepo()
		repo.GetByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Username: username}, nil
		}

		_, err := newIdentityService(repo).Register(ctx, "alice", "other12", "alice2@x.com")
		require.Error(t, err)
		assert.Equal(t, "DUPLICATE_IDENTITY", apperrors.ToDomainError(err).Code)
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		repo := emptyUserRepo()
		repo.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email}, nil
		}

		_, err := newIdentityService(repo).Register(ctx, "bob", "secret1", "alice@x.com")
		require.Error(t, err)
		assert.Equal(t, "DUPLICATE_IDENTITY", apperrors.ToDomainError(err).Code)
	})
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	alice := &domain.User{ID: "user-1", Username: "alice", Email: "alice@x.com", PasswordHash: hash}

	repo := emptyUserRepo()
	repo.GetByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		if username == "alice" {
			return alice, nil
		}
		return nil, pgx.ErrNoRows
	}
	svc := newIdentityService(repo)

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.VerifyCredentials(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPass := svc.VerifyCredentials(ctx, "alice", "wrongpass")
		_, unknownUser := svc.VerifyCredentials(ctx, "nonexistent", "anything")

		require.Error(t, wrongPass)
		require.Error(t, unknownUser)

		de1 := apperrors.ToDomainError(wrongPass)
		de2 := apperrors.ToDomainError(unknownUser)
		assert.Equal(t, "INVALID_CREDENTIALS", de1.Code)
		assert.Equal(t, de1.Code, de2.Code)
		assert.Equal(t, de1.Message, de2.Message)
		assert.Equal(t, de1.HTTPStatus, de2.HTTPStatus)
	})
}

func TestGetProfile(t *testing.T) {
	repo := emptyUserRepo()
	svc := newIdentityService(repo)

	_, err := svc.GetProfile(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
