package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/api/dto"
	"github.com/SBShweta/blood-donation-app/internal/service"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	result, err := h.auth.Register(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAuthResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAuthResponse(result))
}

func invalidPayload(err error) error {
	return apperrors.NewValidationError("Invalid request payload", map[string]any{"reason": err.Error()})
}
