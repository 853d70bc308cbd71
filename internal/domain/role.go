package domain

import (
	"errors"
	"strings"
)

// Role is the coarse permission level carried by every account.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleAdmin     Role = "admin"
)

// ErrInvalidRole is returned when a role string is not one of the known roles.
var ErrInvalidRole = errors.New("role must be one of donor, recipient, admin")

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts user input into a Role. Empty input selects RoleDonor.
func ParseRole(raw string) (Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return RoleDonor, nil
	}
	role := Role(raw)
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
