package domain

import "time"

// User is a registered account: donor, recipient or administrator.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Gender       string
	BloodType    string
	Location     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the public identity handed back with a token.
type UserSummary struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
