package domain

import "time"

// Donation records a donor's offer to give blood. Immutable once created.
type Donation struct {
	ID            string
	DonorName     string
	BloodType     string
	Location      string
	ContactNumber string
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
