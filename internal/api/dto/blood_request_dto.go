package dto

import (
	"time"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/service"
)

// BloodRequestRequest payload for submitting a blood request.
type BloodRequestRequest struct {
	RequesterName string `json:"requesterName"`
	BloodType     string `json:"bloodType"`
	Hospital      string `json:"hospital"`
	ContactNumber string `json:"contactNumber"`
}

// ToInput converts the payload for the blood request service.
func (r BloodRequestRequest) ToInput() service.BloodRequestInput {
	return service.BloodRequestInput(r)
}

// BloodRequestResponse renders a blood request.
type BloodRequestResponse struct {
	ID            string               `json:"_id"`
	RequesterName string               `json:"requesterName"`
	BloodType     string               `json:"bloodType"`
	Hospital      string               `json:"hospital"`
	ContactNumber string               `json:"contactNumber"`
	Status        domain.RequestStatus `json:"status"`
	User          string               `json:"user"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// NewBloodRequestResponses renders blood requests.
func NewBloodRequestResponses(requests []domain.BloodRequest) []BloodRequestResponse {
	out := make([]BloodRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, BloodRequestResponse{
			ID:            r.ID,
			RequesterName: r.RequesterName,
			BloodType:     r.BloodType,
			Hospital:      r.Hospital,
			ContactNumber: r.ContactNumber,
			Status:        r.Status,
			User:          r.UserID,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return out
}
