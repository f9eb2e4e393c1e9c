package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tair/retail-dashboard/internal/order/domain"
	"github.com/tair/retail-dashboard/pkg/database"
)

// MongoOrderRepository stores the ledger in a MongoDB collection
type MongoOrderRepository struct {
	orders *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoDB order repository
func NewMongoOrderRepository(orders *mongo.Collection) *MongoOrderRepository {
	return &MongoOrderRepository{orders: orders}
}

// EnsureIndexes creates the username lookup index
func (r *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return database.MapMongoError(err)
}

func (r *MongoOrderRepository) Append(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	docs := make([]interface{}, len(orders))
	for i := range orders {
		docs[i] = orders[i]
	}
	_, err := r.orders.InsertMany(ctx, docs)
	return database.MapMongoError(err)
}

func (r *MongoOrderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"username": username})
}

func (r *MongoOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, database.MapMongoError(err)
	}

	orders := make([]domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, database.MapMongoError(err)
	}
	return orders, nil
}
