package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository"
)

func TestUserDocumentRoundTripKeepsFieldNames(t *testing.T) {
	u := &domain.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "$2a$10$hash",
		Age:          29,
		BloodType:    "O+",
		Role:         domain.RoleRecipient,
	}
	doc := newUserDocument(u)
	doc.ID = primitive.NewObjectID()

	raw, err := bson.Marshal(doc)
	assert.NoError(t, err)

	var fields bson.M
	assert.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, "$2a$10$hash", fields["password"])
	assert.Equal(t, "O+", fields["bloodType"])
	assert.Equal(t, "recipient", fields["role"])

	back := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, domain.RoleRecipient, back.Role)
}

func TestLegacyDocumentsGetDefaults(t *testing.T) {
	user := userDocument{ID: primitive.NewObjectID(), Name: "Old"}.toDomain()
	assert.Equal(t, domain.RoleDonor, user.Role)

	req := bloodRequestDocument{ID: primitive.NewObjectID(), CreatedAt: time.Now()}.toDomain()
	assert.Equal(t, domain.RequestStatusPending, req.Status)
}

func TestEmailIndexIgnoresCase(t *testing.T) {
	idx := emailIndex()
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, idx.Keys)
	require.NotNil(t, idx.Options.Unique)
	assert.True(t, *idx.Options.Unique)
	require.NotNil(t, idx.Options.Name)
	assert.NotEqual(t, "email_1", *idx.Options.Name)
	require.NotNil(t, idx.Options.Collation)
	assert.Equal(t, 2, idx.Options.Collation.Strength)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	_, err := objectID("not-an-object-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	oid := primitive.NewObjectID()
	got, err := objectID(oid.Hex())
	assert.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestListByUserWithForeignIDIsEmpty(t *testing.T) {
	r := &donationRepository{}
	got, err := r.ListByUser(context.Background(), "3f1c2a9e-uuid-style")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
