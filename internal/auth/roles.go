package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
// It must run after Protect.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthenticated("No token, authorization denied")
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden("Not authorized as admin")
		}
		return c.Next()
	}
}

// ProtectAdmin restricts a route to administrators.
func ProtectAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
