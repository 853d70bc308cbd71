package domain

import "time"

// RequestStatus enumerates lifecycle states for blood requests.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined out of s.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// BloodRequest is a recipient's request for blood, decided by an admin.
type BloodRequest struct {
	ID            string
	RequesterName string
	BloodType     string
	Hospital      string
	ContactNumber string
	Status        RequestStatus
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending: {RequestStatusApproved, RequestStatusRejected},
}

// IsValidTransition reports whether moving from current to next follows the workflow.
func IsValidTransition(current, next RequestStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
