package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/api/dto"
	"github.com/SBShweta/blood-donation-app/internal/service"
)

// BloodRequestsHandler exposes request submission and the admin decision endpoints.
type BloodRequestsHandler struct {
	requests *service.BloodRequestService
}

// NewBloodRequestsHandler constructs handler.
func NewBloodRequestsHandler(requests *service.BloodRequestService) *BloodRequestsHandler {
	return &BloodRequestsHandler{requests: requests}
}

// Create handles POST /api/blood-requests.
func (h *BloodRequestsHandler) Create(c *fiber.Ctx) error {
	var req dto.BloodRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	if _, err := h.requests.Create(c.UserContext(), actorID(c), req.ToInput()); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "Blood request submitted successfully"})
}

// Mine handles GET /api/blood-requests/my-requests.
func (h *BloodRequestsHandler) Mine(c *fiber.Ctx) error {
	requests, err := h.requests.ListMine(c.UserContext(), actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBloodRequestResponses(requests))
}

// List handles GET /api/blood-requests.
func (h *BloodRequestsHandler) List(c *fiber.Ctx) error {
	requests, err := h.requests.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBloodRequestResponses(requests))
}

// Approve handles PUT /api/blood-requests/approve/:id.
func (h *BloodRequestsHandler) Approve(c *fiber.Ctx) error {
	if _, err := h.requests.Approve(c.UserContext(), c.Params("id"), actorID(c)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Request approved"})
}

// Reject handles PUT /api/blood-requests/reject/:id.
func (h *BloodRequestsHandler) Reject(c *fiber.Ctx) error {
	if _, err := h.requests.Reject(c.UserContext(), c.Params("id"), actorID(c)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Request rejected"})
}
