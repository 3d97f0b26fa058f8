package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/dto"
	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/service"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// UsersHandler exposes registration, login and profile endpoints.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identityService *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identityService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return apperrors.NewValidationError("username, password, email required", nil)
	}

	user, err := h.identity.Register(c.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": userSummary(user)},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, err := h.identity.VerifyCredentials(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	token, exp, err := h.identity.IssueToken(user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userSummary(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Profile handles GET /auth/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.identity.GetProfile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userSummary(user)})
}

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedOn: user.CreatedOn,
	}
}
