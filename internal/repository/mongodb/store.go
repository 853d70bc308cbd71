package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/SBShweta/blood-donation-app/internal/repository"
)

const (
	usersCollection         = "users"
	donationsCollection     = "donations"
	bloodRequestsCollection = "bloodrequests"
)

// Store is the MongoDB-backed repository set.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	donation *mongo.Collection
	requests *mongo.Collection
	now      func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New binds the repositories to database dbName.
func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		donation: db.Collection(donationsCollection),
		requests: db.Collection(bloodRequestsCollection),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique email index and the per-owner listing indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, emailIndex()); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	byOwner := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}}
	if _, err := s.donation.Indexes().CreateOne(ctx, byOwner); err != nil {
		return fmt.Errorf("donations owner index: %w", err)
	}
	if _, err := s.requests.Indexes().CreateOne(ctx, byOwner); err != nil {
		return fmt.Errorf("blood requests owner index: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository                 { return &userRepository{coll: s.users, now: s.now} }
func (s *Store) Donations() repository.DonationRepository         { return &donationRepository{coll: s.donation, now: s.now} }
func (s *Store) BloodRequests() repository.BloodRequestRepository { return &bloodRequestRepository{coll: s.requests, now: s.now} }

// Ping verifies the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// emailCollation compares emails ignoring case.
var emailCollation = &options.Collation{Locale: "en", Strength: 2}

// emailIndex gets its own name so it can live next to a legacy exact-match email_1 index.
func emailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_ci").SetUnique(true).SetCollation(emailCollation),
	}
}

// objectID decodes a hex id; undecodable ids cannot match any document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func mapError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
