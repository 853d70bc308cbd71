// Package memory implements the repositories in process. It backs local
// development (STORE_DRIVER=memory) and the test suite.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository"
)

// Store keeps every record in memory behind a single lock.
type Store struct {
	mu        sync.RWMutex
	users     []domain.User
	donations []domain.Donation
	requests  []domain.BloodRequest
	now       func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the timestamp source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Users() repository.UserRepository                 { return userRepository{s} }
func (s *Store) Donations() repository.DonationRepository         { return donationRepository{s} }
func (s *Store) BloodRequests() repository.BloodRequestRepository { return bloodRequestRepository{s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

type userRepository struct{ s *Store }

func (r userRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if strings.EqualFold(r.s.users[i].Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	now := r.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.users {
		if r.s.users[i].ID == id {
			user := r.s.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.users {
		if strings.EqualFold(r.s.users[i].Email, email) {
			user := r.s.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepository) List(context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append(make([]domain.User, 0, len(r.s.users)), r.s.users...), nil
}

func (r userRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type donationRepository struct{ s *Store }

func (r donationRepository) Create(_ context.Context, donation *domain.Donation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	donation.ID = uuid.NewString()
	donation.CreatedAt = now
	donation.UpdatedAt = now
	r.s.donations = append(r.s.donations, *donation)
	return nil
}

func (r donationRepository) ListByUser(_ context.Context, userID string) ([]domain.Donation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Donation, 0)
	for i := len(r.s.donations) - 1; i >= 0; i-- {
		if r.s.donations[i].UserID == userID {
			out = append(out, r.s.donations[i])
		}
	}
	// Reverse insertion order breaks ties between equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type bloodRequestRepository struct{ s *Store }

func (r bloodRequestRepository) Create(_ context.Context, request *domain.BloodRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	request.ID = uuid.NewString()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.s.requests = append(r.s.requests, *request)
	return nil
}

func (r bloodRequestRepository) GetByID(_ context.Context, id string) (*domain.BloodRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.requests {
		if r.s.requests[i].ID == id {
			req := r.s.requests[i]
			return &req, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r bloodRequestRepository) List(context.Context) ([]domain.BloodRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append(make([]domain.BloodRequest, 0, len(r.s.requests)), r.s.requests...), nil
}

func (r bloodRequestRepository) ListByUser(_ context.Context, userID string) ([]domain.BloodRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.BloodRequest, 0)
	for i := len(r.s.requests) - 1; i >= 0; i-- {
		if r.s.requests[i].UserID == userID {
			out = append(out, r.s.requests[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r bloodRequestRepository) UpdateStatus(_ context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.requests {
		if r.s.requests[i].ID == id {
			r.s.requests[i].Status = status
			r.s.requests[i].UpdatedAt = r.s.now()
			req := r.s.requests[i]
			return &req, nil
		}
	}
	return nil, repository.ErrNotFound
}
