package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
)

type UserService struct {
	UsersCollection *mongo.Collection
}

func NewUserService(usersCollection *mongo.Collection) *UserService {
	return &UserService{UsersCollection: usersCollection}
}

// CreateUser validates and persists a new user. A duplicate email surfaces
// as the driver's duplicate-key error and is classified at the boundary.
func (s *UserService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.Normalize()
	user.ApplyDefaults()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.UsersCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByID returns the user whether active or not; deactivation does not
// hide a user from direct fetches.
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UsersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// UpdateUser applies a partial update after re-validating the provided
// fields. The activation flag cannot be changed here.
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.UsersCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": userUpdateDoc(update, time.Now().UTC())},
		opts,
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("user not found")
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// DeactivateUser flips isActive off. Idempotent; only a missing id fails.
func (s *UserService) DeactivateUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.UsersCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}
	return &user, nil
}

// ListUsers returns one page of users matching the filter plus the total
// match count.
func (s *UserService) ListUsers(ctx context.Context, filter UserFilter, listOpts ListOptions) ([]models.User, int64, error) {
	listOpts = listOpts.Normalized()
	query := buildUserFilter(filter)

	findOpts := options.Find().
		SetSort(listOpts.Sort()).
		SetSkip(listOpts.Skip()).
		SetLimit(listOpts.Limit)

	cursor, err := s.UsersCollection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	total, err := s.UsersCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}
