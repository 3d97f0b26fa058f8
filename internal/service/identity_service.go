package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 6
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyHash keeps credential verification doing bcrypt work even when the
// username does not exist, so the two failure causes stay indistinguishable.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// IdentityService coordinates registration and credential verification.
type IdentityService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// IdentityDependencies encapsulates requirements for the identity service.
type IdentityDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The password is never persisted; only its
// bcrypt verifier is stored.
func (s *IdentityService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateRegistration(username, password, email); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewDuplicateIdentity("username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateIdentity("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserRegistered,
		OwnerID: user.ID,
		Payload: events.UserRegisteredPayload{Username: user.Username},
	})
	return user, nil
}

// VerifyCredentials authenticates a username/password pair. Unknown username
// and wrong password both yield the same generic failure.
func (s *IdentityService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = auth.ComparePassword(dummyHash, password)
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return user, nil
}

// IssueToken generates an access token for a verified user.
func (s *IdentityService) IssueToken(user *domain.User) (string, time.Time, error) {
	return s.tokenMgr.GenerateToken(user.ID)
}

// GetProfile returns the user record for a resolved caller.
func (s *IdentityService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *IdentityService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}

func validateRegistration(username, password, email string) error {
	details := map[string]any{}
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		details["username"] = "must be between 3 and 50 characters"
	}
	if !emailPattern.MatchString(email) {
		details["email"] = "must be a valid email address"
	}
	if len(password) < passwordMinLen {
		details["password"] = "must be at least 6 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid registration input", details)
	}
	return nil
}
