package events

import (
	"time"

	"github.com/SBShweta/blood-donation-app/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBloodRequestCreated       EventType = "blood_request.created"
	EventBloodRequestStatusChanged EventType = "blood_request.status_changed"
	EventDonationCreated           EventType = "donation.created"
	EventUserDeleted               EventType = "user.deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BloodRequestCreatedPayload payload.
type BloodRequestCreatedPayload struct {
	BloodType string `json:"blood_type"`
	Hospital  string `json:"hospital"`
}

// BloodRequestStatusChangedPayload payload.
type BloodRequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
	OwnerID   string               `json:"owner_id"`
}

// DonationCreatedPayload payload.
type DonationCreatedPayload struct {
	BloodType string `json:"blood_type"`
	Location  string `json:"location"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
