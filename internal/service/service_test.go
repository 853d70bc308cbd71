package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/events"
	"github.com/SBShweta/blood-donation-app/internal/repository/memory"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

// tickingClock returns strictly increasing timestamps so ordering is deterministic.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func TestDonationService(t *testing.T) {
	store := memory.New().WithClock(tickingClock())
	dispatcher := &recordingDispatcher{}
	svc := NewDonationService(store.Donations(), dispatcher, zap.NewNop())
	ctx := context.Background()

	mine, err := svc.ListMine(ctx, "owner-1")
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)

	first, err := svc.Create(ctx, "owner-1", DonationInput{DonorName: "Ana", BloodType: "O+", Location: "Pune", ContactNumber: "123"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "owner-1", DonationInput{DonorName: "Ana", BloodType: "O+", Location: "Mumbai", ContactNumber: "123"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", DonationInput{DonorName: "Bo", BloodType: "A-", Location: "Goa", ContactNumber: "456"})
	require.NoError(t, err)

	mine, err = svc.ListMine(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	assert.Equal(t, "owner-1", mine[0].UserID)

	assert.Equal(t, []events.EventType{events.EventDonationCreated, events.EventDonationCreated, events.EventDonationCreated}, dispatcher.types())
}

func TestDonationServiceRequiresAllFields(t *testing.T) {
	store := memory.New()
	svc := NewDonationService(store.Donations(), nil, zap.NewNop())

	_, err := svc.Create(context.Background(), "owner-1", DonationInput{DonorName: "Ana", BloodType: " ", Location: "Pune"})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "All fields are required", de.Message)
	assert.ElementsMatch(t, []string{"bloodType", "contactNumber"}, de.Details["fields"])

	mine, err := svc.ListMine(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func validRequest(name string) BloodRequestInput {
	return BloodRequestInput{RequesterName: name, BloodType: "B+", Hospital: "City", ContactNumber: "999"}
}

func TestBloodRequestLifecycle(t *testing.T) {
	store := memory.New().WithClock(tickingClock())
	dispatcher := &recordingDispatcher{}
	core, logs := observer.New(zap.WarnLevel)
	svc := NewBloodRequestService(store.BloodRequests(), dispatcher, zap.New(core))
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", validRequest("Cy"))
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, created.Status)

	approved, err := svc.Approve(ctx, created.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, approved.Status)
	assert.Equal(t, 0, logs.Len())

	// Overwriting a decided request succeeds and is logged.
	rejected, err := svc.Reject(ctx, created.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, rejected.Status)
	assert.Equal(t, 1, logs.FilterMessage("overwriting decided blood request").Len())

	again, err := svc.Reject(ctx, created.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, again.Status)

	assert.Equal(t, []events.EventType{
		events.EventBloodRequestCreated,
		events.EventBloodRequestStatusChanged,
		events.EventBloodRequestStatusChanged,
		events.EventBloodRequestStatusChanged,
	}, dispatcher.types())

	payload, ok := dispatcher.events[2].Payload.(events.BloodRequestStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.RequestStatusApproved, payload.OldStatus)
	assert.Equal(t, domain.RequestStatusRejected, payload.NewStatus)
	assert.Equal(t, "owner-1", payload.OwnerID)
}

func TestBloodRequestDecisionNotFound(t *testing.T) {
	store := memory.New()
	dispatcher := &recordingDispatcher{}
	svc := NewBloodRequestService(store.BloodRequests(), dispatcher, zap.NewNop())

	for _, decide := range []func(context.Context, string, string) (*domain.BloodRequest, error){svc.Approve, svc.Reject} {
		_, err := decide(context.Background(), "missing", "admin-1")
		require.Error(t, err)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
		assert.Equal(t, "Not found", de.Message)
	}
	assert.Empty(t, dispatcher.types())
}

func TestBloodRequestListing(t *testing.T) {
	store := memory.New().WithClock(tickingClock())
	svc := NewBloodRequestService(store.BloodRequests(), nil, zap.NewNop())
	ctx := context.Background()

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)

	a, err := svc.Create(ctx, "owner-1", validRequest("A"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, "owner-2", validRequest("B"))
	require.NoError(t, err)
	c, err := svc.Create(ctx, "owner-1", validRequest("C"))
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, []string{c.ID, a.ID}, []string{mine[0].ID, mine[1].ID})

	all, err = svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	_, err = svc.Create(ctx, "owner-1", BloodRequestInput{RequesterName: "D"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestUserService(t *testing.T) {
	store := memory.New()
	dispatcher := &recordingDispatcher{}
	svc := NewUserService(store.Users(), dispatcher, zap.NewNop())
	ctx := context.Background()

	donor := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Role: domain.RoleDonor}
	require.NoError(t, store.Users().Create(ctx, donor))
	donation := &domain.Donation{DonorName: "Ana", BloodType: "O+", Location: "Pune", ContactNumber: "1", UserID: donor.ID}
	require.NoError(t, store.Donations().Create(ctx, donation))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)

	require.NoError(t, svc.Delete(ctx, donor.ID, "admin-1"))
	assert.Equal(t, []events.EventType{events.EventUserDeleted}, dispatcher.types())

	err = svc.Delete(ctx, donor.ID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "User not found", apperrors.ToDomainError(err).Message)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	// The deleted user's donations remain.
	orphans, err := store.Donations().ListByUser(ctx, donor.ID)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)
}

func TestAuditServiceLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	store := memory.New()
	requests := NewBloodRequestService(store.BloodRequests(), dispatcher, zap.NewNop())
	users := NewUserService(store.Users(), dispatcher, zap.NewNop())
	ctx := context.Background()

	created, err := requests.Create(ctx, "owner-1", validRequest("Cy"))
	require.NoError(t, err)
	_, err = requests.Approve(ctx, created.ID, "admin-1")
	require.NoError(t, err)

	user := &domain.User{Name: "Ana", Email: "ana@example.com", Role: domain.RoleDonor}
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, users.Delete(ctx, user.ID, "admin-1"))

	assert.Equal(t, 1, logs.FilterMessage(string(events.EventBloodRequestCreated)).Len())
	changed := logs.FilterMessage(string(events.EventBloodRequestStatusChanged))
	require.Equal(t, 1, changed.Len())
	assert.Equal(t, 1, changed.FilterField(zap.String("new_status", "approved")).Len())
	assert.Equal(t, 1, logs.FilterMessage(string(events.EventUserDeleted)).Len())
}
