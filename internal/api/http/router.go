package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/api/http/handlers"
	"github.com/SBShweta/blood-donation-app/internal/auth"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Donations      *handlers.DonationsHandler
	BloodRequests  *handlers.BloodRequestsHandler
	AuthMiddleware *auth.AuthMiddleware
	// AuthLimiter throttles /api/auth; nil disables it.
	AuthLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	if cfg.AuthLimiter != nil {
		authGroup.Use(cfg.AuthLimiter)
	}
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protect := cfg.AuthMiddleware.Protect
	admin := auth.ProtectAdmin()

	// Guards are per route: group middleware matches by raw prefix and would catch /api/users-foo.
	users := api.Group("/users")
	users.Get("/", protect, admin, cfg.Users.List)
	users.Delete("/:id", protect, admin, cfg.Users.Delete)

	donations := api.Group("/donations")
	donations.Post("/", protect, cfg.Donations.Create)
	donations.Get("/my-donations", protect, cfg.Donations.Mine)

	requests := api.Group("/blood-requests")
	requests.Post("/", protect, cfg.BloodRequests.Create)
	requests.Get("/my-requests", protect, cfg.BloodRequests.Mine)
	requests.Get("/", protect, admin, cfg.BloodRequests.List)
	requests.Put("/approve/:id", protect, admin, cfg.BloodRequests.Approve)
	requests.Put("/reject/:id", protect, admin, cfg.BloodRequests.Reject)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Route not found")
	})
}
