package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/SBShweta/blood-donation-app/internal/api/dto"
	"github.com/SBShweta/blood-donation-app/internal/service"
)

// DonationsHandler exposes the caller's donations.
type DonationsHandler struct {
	donations *service.DonationService
}

// NewDonationsHandler constructs handler.
func NewDonationsHandler(donations *service.DonationService) *DonationsHandler {
	return &DonationsHandler{donations: donations}
}

// Create handles POST /api/donations.
func (h *DonationsHandler) Create(c *fiber.Ctx) error {
	var req dto.DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	if _, err := h.donations.Create(c.UserContext(), actorID(c), req.ToInput()); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "Thank you for your donation!"})
}

// Mine handles GET /api/donations/my-donations.
func (h *DonationsHandler) Mine(c *fiber.Ctx) error {
	donations, err := h.donations.ListMine(c.UserContext(), actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDonationResponses(donations))
}
