package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SBShweta/blood-donation-app/internal/domain"
)

func TestAgeDecoding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Age
		wantErr bool
	}{
		{"number", `{"age": 31}`, 31, false},
		{"string", `{"age": "42"}`, 42, false},
		{"padded string", `{"age": " 27 "}`, 27, false},
		{"empty string", `{"age": ""}`, 0, false},
		{"null", `{"age": null}`, 0, false},
		{"absent", `{}`, 0, false},
		{"words", `{"age": "old"}`, 0, true},
		{"negative", `{"age": -3}`, 0, true},
		{"upper bound", `{"age": 150}`, 150, false},
		{"above bound", `{"age": 151}`, 0, true},
		{"overflowing number", `{"age": 1e30}`, 0, true},
		{"overflowing string", `{"age": "1e30"}`, 0, true},
		{"nan", `{"age": "NaN"}`, 0, true},
		{"infinity", `{"age": "Inf"}`, 0, true},
		{"negative infinity", `{"age": "-Inf"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RegisterRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Age)
		})
	}
}

func TestRecordsRenderDocumentFieldNames(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	body, err := json.Marshal(NewBloodRequestResponses([]domain.BloodRequest{{
		ID:            "r1",
		RequesterName: "Cy",
		BloodType:     "AB+",
		Hospital:      "City",
		ContactNumber: "9",
		Status:        domain.RequestStatusPending,
		UserID:        "u1",
		CreatedAt:     at,
		UpdatedAt:     at,
	}}))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "r1", decoded[0]["_id"])
	assert.Equal(t, "u1", decoded[0]["user"])
	assert.Equal(t, "pending", decoded[0]["status"])
	assert.Equal(t, "2024-05-01T10:00:00Z", decoded[0]["createdAt"])
}

func TestUserResponseOmitsPassword(t *testing.T) {
	body, err := json.Marshal(NewUserResponses([]domain.User{{ID: "u1", Email: "a@b.c", PasswordHash: "secret-hash", Role: domain.RoleDonor}}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret-hash")
	assert.NotContains(t, string(body), "password")
}

func TestEmptyListsRenderAsArrays(t *testing.T) {
	body, err := json.Marshal(NewDonationResponses(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
