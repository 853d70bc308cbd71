package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

const userKey = "auth_user"

const bearerPrefix = "Bearer "

// AuthMiddleware validates bearer tokens and loads the caller.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Protect enforces authentication for protected routes.
func (m *AuthMiddleware) Protect(c *fiber.Ctx) error {
	user, err := m.authenticate(c)
	if err != nil {
		return err
	}
	c.Locals(userKey, user)
	return c.Next()
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*domain.User, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, apperrors.NewUnauthenticated("No token, authorization denied")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return nil, apperrors.NewUnauthenticated("No token, authorization denied")
	}

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return nil, apperrors.NewInvalidToken()
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUserNotFound()
		}
		return nil, apperrors.NewInternalError(err)
	}

	user.PasswordHash = ""
	return user, nil
}

// CurrentUser retrieves the authenticated user stored by Protect.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(userKey).(*domain.User)
	return user, ok && user != nil
}
