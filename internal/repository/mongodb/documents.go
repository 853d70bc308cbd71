package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SBShweta/blood-donation-app/internal/domain"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Age       int                `bson:"age,omitempty"`
	Gender    string             `bson:"gender,omitempty"`
	BloodType string             `bson:"bloodType,omitempty"`
	Location  string             `bson:"location,omitempty"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Age:       u.Age,
		Gender:    u.Gender,
		BloodType: u.BloodType,
		Location:  u.Location,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toDomain() domain.User {
	role := domain.Role(d.Role)
	if role == "" {
		role = domain.RoleDonor
	}
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Age:          d.Age,
		Gender:       d.Gender,
		BloodType:    d.BloodType,
		Location:     d.Location,
		Role:         role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type donationDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	DonorName     string             `bson:"donorName"`
	BloodType     string             `bson:"bloodType"`
	Location      string             `bson:"location"`
	ContactNumber string             `bson:"contactNumber"`
	User          primitive.ObjectID `bson:"user"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d donationDocument) toDomain() domain.Donation {
	return domain.Donation{
		ID:            d.ID.Hex(),
		DonorName:     d.DonorName,
		BloodType:     d.BloodType,
		Location:      d.Location,
		ContactNumber: d.ContactNumber,
		UserID:        d.User.Hex(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type bloodRequestDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	RequesterName string             `bson:"requesterName"`
	BloodType     string             `bson:"bloodType"`
	Hospital      string             `bson:"hospital"`
	ContactNumber string             `bson:"contactNumber"`
	Status        string             `bson:"status"`
	User          primitive.ObjectID `bson:"user"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d bloodRequestDocument) toDomain() domain.BloodRequest {
	status := domain.RequestStatus(d.Status)
	if status == "" {
		status = domain.RequestStatusPending
	}
	return domain.BloodRequest{
		ID:            d.ID.Hex(),
		RequesterName: d.RequesterName,
		BloodType:     d.BloodType,
		Hospital:      d.Hospital,
		ContactNumber: d.ContactNumber,
		Status:        status,
		UserID:        d.User.Hex(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
