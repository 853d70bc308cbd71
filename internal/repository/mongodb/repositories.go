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

	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository"
)

type userRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := newUserDocument(user)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(emailCollation))
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type donationRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	owner, err := primitive.ObjectIDFromHex(donation.UserID)
	if err != nil {
		return fmt.Errorf("donation owner %q: %w", donation.UserID, err)
	}
	now := r.now()
	doc := donationDocument{
		ID:            primitive.NewObjectID(),
		DonorName:     donation.DonorName,
		BloodType:     donation.BloodType,
		Location:      donation.Location,
		ContactNumber: donation.ContactNumber,
		User:          owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	donation.ID = doc.ID.Hex()
	donation.CreatedAt = now
	donation.UpdatedAt = now
	return nil
}

func (r *donationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Donation, error) {
	out := make([]domain.Donation, 0)
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"user": owner}, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []donationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

type bloodRequestRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *bloodRequestRepository) Create(ctx context.Context, request *domain.BloodRequest) error {
	owner, err := primitive.ObjectIDFromHex(request.UserID)
	if err != nil {
		return fmt.Errorf("blood request owner %q: %w", request.UserID, err)
	}
	now := r.now()
	doc := bloodRequestDocument{
		ID:            primitive.NewObjectID(),
		RequesterName: request.RequesterName,
		BloodType:     request.BloodType,
		Hospital:      request.Hospital,
		ContactNumber: request.ContactNumber,
		Status:        string(request.Status),
		User:          owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	request.ID = doc.ID.Hex()
	request.CreatedAt = now
	request.UpdatedAt = now
	return nil
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc bloodRequestDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	req := doc.toDomain()
	return &req, nil
}

func (r *bloodRequestRepository) List(ctx context.Context) ([]domain.BloodRequest, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *bloodRequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return make([]domain.BloodRequest, 0), nil
	}
	return r.find(ctx, bson.M{"user": owner}, newestFirst)
}

func (r *bloodRequestRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.BloodRequest, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := r.coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bloodRequestDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.BloodRequest, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *bloodRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.BloodRequest, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": r.now()}}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bloodRequestDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, after).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	req := doc.toDomain()
	return &req, nil
}
