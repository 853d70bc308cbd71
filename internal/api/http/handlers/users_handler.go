package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/api/dto"
	"github.com/SBShweta/blood-donation-app/internal/auth"
	"github.com/SBShweta/blood-donation-app/internal/service"
)

// UsersHandler exposes admin account management.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id"), actorID(c)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

func actorID(c *fiber.Ctx) string {
	if user, ok := auth.CurrentUser(c); ok {
		return user.ID
	}
	return ""
}
