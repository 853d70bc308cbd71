package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/events"
	"github.com/SBShweta/blood-donation-app/internal/repository"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

const allFieldsRequired = "All fields are required"

// DonationInput carries the donation form.
type DonationInput struct {
	DonorName     string `json:"donorName" validate:"required"`
	BloodType     string `json:"bloodType" validate:"required"`
	Location      string `json:"location" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
}

// DonationService records donations for the authenticated user.
type DonationService struct {
	donations repository.DonationRepository
	events    publisher
	logger    *zap.Logger
}

// NewDonationService builds the service.
func NewDonationService(donations repository.DonationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DonationService {
	return &DonationService{
		donations: donations,
		events:    publisher{dispatcher: dispatcher, logger: logger},
		logger:    logger,
	}
}

// Create stores a donation owned by ownerID.
func (s *DonationService) Create(ctx context.Context, ownerID string, input DonationInput) (*domain.Donation, error) {
	input.DonorName = strings.TrimSpace(input.DonorName)
	input.BloodType = strings.TrimSpace(input.BloodType)
	input.Location = strings.TrimSpace(input.Location)
	input.ContactNumber = strings.TrimSpace(input.ContactNumber)
	if err := validateInput(input, allFieldsRequired); err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		DonorName:     input.DonorName,
		BloodType:     input.BloodType,
		Location:      input.Location,
		ContactNumber: input.ContactNumber,
		UserID:        ownerID,
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("donation recorded", zap.String("donation_id", donation.ID), zap.String("user_id", ownerID))
	s.events.publish(ctx, events.EventDonationCreated, donation.ID, ownerID, events.DonationCreatedPayload{
		BloodType: donation.BloodType,
		Location:  donation.Location,
	})
	return donation, nil
}

// ListMine returns the owner's donations newest first.
func (s *DonationService) ListMine(ctx context.Context, ownerID string) ([]domain.Donation, error) {
	donations, err := s.donations.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	return donations, nil
}
