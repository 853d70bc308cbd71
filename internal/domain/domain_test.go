package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleDonor, false},
		{"donor", RoleDonor, false},
		{" Recipient ", RoleRecipient, false},
		{"ADMIN", RoleAdmin, false},
		{"nurse", "", true},
	}
	for _, tt := range cases {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRole, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestIsValidTransition(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		valid    bool
	}{
		{RequestStatusPending, RequestStatusApproved, true},
		{RequestStatusPending, RequestStatusRejected, true},
		{RequestStatusPending, RequestStatusPending, false},
		{RequestStatusApproved, RequestStatusRejected, false},
		{RequestStatusApproved, RequestStatusApproved, false},
		{RequestStatusRejected, RequestStatusApproved, false},
	}
	for _, tt := range cases {
		if got := IsValidTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("IsValidTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.True(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.False(t, RequestStatus("cancelled").Valid())
}

func TestUserSummaryOmitsSecret(t *testing.T) {
	u := &User{ID: "u1", Name: "A", Email: "a@example.com", PasswordHash: "hash", Role: RoleAdmin}
	assert.Equal(t, UserSummary{ID: "u1", Name: "A", Email: "a@example.com", Role: RoleAdmin}, u.Summary())
	assert.True(t, u.IsAdmin())
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
}
