package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/service"
)

// Age accepts a JSON number or a numeric string. Empty strings and null decode to zero.
type Age int

// MaxAge bounds accepted ages.
const MaxAge = 150

// UnmarshalJSON implements json.Unmarshaler.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*a = 0
			return nil
		}
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n > MaxAge {
		return fmt.Errorf("age must be a number between 0 and %d", MaxAge)
	}
	*a = Age(int(n))
	return nil
}

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Age       Age    `json:"age"`
	Gender    string `json:"gender"`
	BloodType string `json:"bloodType"`
	Location  string `json:"location"`
}

// ToInput converts the payload for the auth service.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		Age:       int(r.Age),
		Gender:    r.Gender,
		BloodType: r.BloodType,
		Location:  r.Location,
	}
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummaryResponse is the identity returned alongside a token.
type UserSummaryResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      UserSummaryResponse `json:"user"`
}

// NewAuthResponse renders a service result.
func NewAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User: UserSummaryResponse{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Email: result.User.Email,
			Role:  result.User.Role,
		},
	}
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}
