package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/persistence"
)

// Pinger is satisfied by the store and Redis wrappers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	environment string
	store       Pinger
	redis       Pinger
	now         func() time.Time
}

// NewHealthHandler returns a new handler instance. redis may be nil.
func NewHealthHandler(serviceName, version, environment string, store, redis Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		environment: environment,
		store:       store,
		redis:       redis,
		now:         time.Now,
	}
}

// Root describes the API.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":       "Blood Donation API",
		"service":       h.serviceName,
		"version":       h.version,
		"documentation": "/api/health",
	})
}

// Health reports service liveness.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "OK",
		"message":     "Blood Donation API is running",
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}

// Ready reports service readiness by checking dependencies. Redis is optional;
// when it is not configured it is reported but does not fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.store.Ping(ctx); err != nil {
		depStatus["store"] = err.Error()
		ready = false
	} else {
		depStatus["store"] = "ok"
	}

	if h.redis != nil {
		switch err := h.redis.Ping(ctx); {
		case err == nil:
			depStatus["redis"] = "ok"
		case errors.Is(err, persistence.ErrRedisDisabled):
			depStatus["redis"] = "disabled"
		default:
			depStatus["redis"] = err.Error()
			ready = false
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"status":       "unavailable",
		"message":      "one or more dependencies unavailable",
		"code":         "DEPENDENCY_UNAVAILABLE",
		"dependencies": depStatus,
	})
}
