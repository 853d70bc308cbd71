package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/events"
	"github.com/SBShweta/blood-donation-app/internal/repository"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// UserService backs the admin user management endpoints.
type UserService struct {
	users  repository.UserRepository
	events publisher
	logger *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		events: publisher{dispatcher: dispatcher, logger: logger},
		logger: logger,
	}
}

// List returns every account with password hashes cleared.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Delete removes an account. Donations and requests owned by it are left in place.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return mapUserLookup(err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return mapUserLookup(err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("actor_id", actorID))
	s.events.publish(ctx, events.EventUserDeleted, id, actorID, events.UserDeletedPayload{
		Email: user.Email,
		Role:  user.Role,
	})
	return nil
}

func mapUserLookup(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("User not found")
	}
	return apperrors.NewInternalError(err)
}
