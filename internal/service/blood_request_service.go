package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/events"
	"github.com/SBShweta/blood-donation-app/internal/repository"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// BloodRequestInput carries the blood request form.
type BloodRequestInput struct {
	RequesterName string `json:"requesterName" validate:"required"`
	BloodType     string `json:"bloodType" validate:"required"`
	Hospital      string `json:"hospital" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
}

// BloodRequestService manages the request lifecycle.
type BloodRequestService struct {
	requests repository.BloodRequestRepository
	events   publisher
	logger   *zap.Logger
}

// NewBloodRequestService builds the service.
func NewBloodRequestService(requests repository.BloodRequestRepository, dispatcher events.Dispatcher, logger *zap.Logger) *BloodRequestService {
	return &BloodRequestService{
		requests: requests,
		events:   publisher{dispatcher: dispatcher, logger: logger},
		logger:   logger,
	}
}

// Create submits a pending request owned by ownerID.
func (s *BloodRequestService) Create(ctx context.Context, ownerID string, input BloodRequestInput) (*domain.BloodRequest, error) {
	input.RequesterName = strings.TrimSpace(input.RequesterName)
	input.BloodType = strings.TrimSpace(input.BloodType)
	input.Hospital = strings.TrimSpace(input.Hospital)
	input.ContactNumber = strings.TrimSpace(input.ContactNumber)
	if err := validateInput(input, allFieldsRequired); err != nil {
		return nil, err
	}

	request := &domain.BloodRequest{
		RequesterName: input.RequesterName,
		BloodType:     input.BloodType,
		Hospital:      input.Hospital,
		ContactNumber: input.ContactNumber,
		Status:        domain.RequestStatusPending,
		UserID:        ownerID,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("blood request submitted", zap.String("request_id", request.ID), zap.String("user_id", ownerID))
	s.events.publish(ctx, events.EventBloodRequestCreated, request.ID, ownerID, events.BloodRequestCreatedPayload{
		BloodType: request.BloodType,
		Hospital:  request.Hospital,
	})
	return request, nil
}

// ListMine returns the owner's requests newest first.
func (s *BloodRequestService) ListMine(ctx context.Context, ownerID string) ([]domain.BloodRequest, error) {
	return s.list(s.requests.ListByUser(ctx, ownerID))
}

// ListAll returns every request in store order.
func (s *BloodRequestService) ListAll(ctx context.Context) ([]domain.BloodRequest, error) {
	return s.list(s.requests.List(ctx))
}

func (s *BloodRequestService) list(requests []domain.BloodRequest, err error) ([]domain.BloodRequest, error) {
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if requests == nil {
		requests = []domain.BloodRequest{}
	}
	return requests, nil
}

// Approve marks the request approved.
func (s *BloodRequestService) Approve(ctx context.Context, id, actorID string) (*domain.BloodRequest, error) {
	return s.decide(ctx, id, actorID, domain.RequestStatusApproved)
}

// Reject marks the request rejected.
func (s *BloodRequestService) Reject(ctx context.Context, id, actorID string) (*domain.BloodRequest, error) {
	return s.decide(ctx, id, actorID, domain.RequestStatusRejected)
}

// decide writes next regardless of the current status. Overwriting a decided
// request is permitted and logged.
func (s *BloodRequestService) decide(ctx context.Context, id, actorID string, next domain.RequestStatus) (*domain.BloodRequest, error) {
	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, mapRequestLookup(err)
	}

	if !domain.IsValidTransition(current.Status, next) {
		s.logger.Warn("overwriting decided blood request",
			zap.String("request_id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(next)))
	}

	updated, err := s.requests.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, mapRequestLookup(err)
	}

	s.events.publish(ctx, events.EventBloodRequestStatusChanged, id, actorID, events.BloodRequestStatusChangedPayload{
		OldStatus: current.Status,
		NewStatus: updated.Status,
		OwnerID:   updated.UserID,
	})
	return updated, nil
}

func mapRequestLookup(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Not found")
	}
	return apperrors.NewInternalError(err)
}
