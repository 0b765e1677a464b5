package repository

import (
	"context"
	"errors"
	"time"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/repository/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserRepository implements user persistence over mongo
type UserRepository struct {
	db *mongodb.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *mongodb.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) col() *mongo.Collection {
	return ur.db.Collection(usersCollection)
}

// CreateUser inserts a new user. A duplicate email returns ErrConflictData.
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	res, err := ur.col().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return user, nil
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := ur.col().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail returns user by email
func (ur *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := ur.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByVerificationToken returns the user holding the given
// email verification token.
func (ur *UserRepository) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := ur.col().FindOne(ctx, bson.M{"verificationToken": token}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateUser replaces the stored user document.
func (ur *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := ur.col().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteUser removes user by id
func (ur *UserRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := ur.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// ListUsers returns all users, newest first.
func (ur *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := ur.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUsersByIDs returns the users with the given ids, keyed by id.
// Missing ids are simply absent from the result.
func (ur *UserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := ur.col().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		out[u.ID] = u
	}

	return out, nil
}
