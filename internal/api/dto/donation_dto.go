package dto

import (
	"time"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/service"
)

// DonationRequest payload for recording a donation.
type DonationRequest struct {
	DonorName     string `json:"donorName"`
	BloodType     string `json:"bloodType"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`
}

// ToInput converts the payload for the donation service.
func (r DonationRequest) ToInput() service.DonationInput {
	return service.DonationInput(r)
}

// DonationResponse renders a donation record.
type DonationResponse struct {
	ID            string    `json:"_id"`
	DonorName     string    `json:"donorName"`
	BloodType     string    `json:"bloodType"`
	Location      string    `json:"location"`
	ContactNumber string    `json:"contactNumber"`
	User          string    `json:"user"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewDonationResponses renders donations.
func NewDonationResponses(donations []domain.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, DonationResponse{
			ID:            d.ID,
			DonorName:     d.DonorName,
			BloodType:     d.BloodType,
			Location:      d.Location,
			ContactNumber: d.ContactNumber,
			User:          d.UserID,
			CreatedAt:     d.CreatedAt,
			UpdatedAt:     d.UpdatedAt,
		})
	}
	return out
}
