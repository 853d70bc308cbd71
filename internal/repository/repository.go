package repository

import (
	"context"
	"errors"

	"github.com/SBShweta/blood-donation-app/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the requested id.
	// Ids the backend cannot decode are reported the same way.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

// DonationRepository persists donation records.
type DonationRepository interface {
	// Create assigns ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, donation *domain.Donation) error
	// ListByUser returns the owner's donations newest first, never nil.
	ListByUser(ctx context.Context, userID string) ([]domain.Donation, error)
}

// BloodRequestRepository persists blood requests and their status.
type BloodRequestRepository interface {
	Create(ctx context.Context, request *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	List(ctx context.Context) ([]domain.BloodRequest, error)
	ListByUser(ctx context.Context, userID string) ([]domain.BloodRequest, error)
	// UpdateStatus overwrites the status unconditionally; the last write wins.
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error)
}

// Store bundles the repositories of one backend.
type Store interface {
	Users() UserRepository
	Donations() DonationRepository
	BloodRequests() BloodRequestRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
