package dto

import (
	"time"

	"github.com/SBShweta/blood-donation-app/internal/domain"
)

// UserResponse is the admin view of an account. The password hash is never rendered.
type UserResponse struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Age       int         `json:"age,omitempty"`
	Gender    string      `json:"gender,omitempty"`
	BloodType string      `json:"bloodType,omitempty"`
	Location  string      `json:"location,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewUserResponses renders users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Age:       u.Age,
			Gender:    u.Gender,
			BloodType: u.BloodType,
			Location:  u.Location,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return out
}
