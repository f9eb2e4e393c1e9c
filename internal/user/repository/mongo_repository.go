package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tair/retail-dashboard/internal/user/domain"
	"github.com/tair/retail-dashboard/pkg/database"
)

// MongoUserRepository stores credentials as documents
type MongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository creates a new Mongo user repository
func NewMongoUserRepository(db *mongo.Database, collection string) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection(collection)}
}

// EnsureIndexes creates the unique username index
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username"),
	})
	return database.MapMongoError(err)
}

// Create inserts a new user document
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.DuplicateError(user.Username)
	}
	return database.MapMongoError(err)
}

// FindByUsername retrieves a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFoundError(username)
	}
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	return &user, nil
}

// Count returns the number of users
func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.D{})
	return n, database.MapMongoError(err)
}
