package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/events"
)

// AuditService records domain events in the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventBloodRequestCreated, a.record)
	a.dispatcher.Subscribe(events.EventBloodRequestStatusChanged, a.handleStatusChanged)
	a.dispatcher.Subscribe(events.EventDonationCreated, a.record)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handleUserDeleted)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), a.fields(event)...)
	return nil
}

func (a *AuditService) handleStatusChanged(_ context.Context, event events.Event) error {
	fields := a.fields(event)
	if payload, ok := event.Payload.(events.BloodRequestStatusChangedPayload); ok {
		fields = append(fields,
			zap.String("old_status", string(payload.OldStatus)),
			zap.String("new_status", string(payload.NewStatus)),
			zap.String("owner_id", payload.OwnerID))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleUserDeleted(_ context.Context, event events.Event) error {
	fields := a.fields(event)
	if payload, ok := event.Payload.(events.UserDeletedPayload); ok {
		// Records owned by the account are not removed with it.
		fields = append(fields, zap.String("role", string(payload.Role)), zap.Bool("orphans_records", true))
	}
	a.logger.Warn(string(event.Type), fields...)
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.Time("at", event.Timestamp),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	return fields
}
