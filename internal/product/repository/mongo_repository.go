package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tair/retail-dashboard/internal/product/domain"
	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/database"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// codeIllegalOperation is returned by standalone servers for transactions
const codeIllegalOperation = 20

// MongoProductRepository stores the catalog as documents
type MongoProductRepository struct {
	client   *mongo.Client
	products *mongo.Collection
	counters *mongo.Collection
}

// NewMongoProductRepository creates a catalog repository on the given collections
func NewMongoProductRepository(db *mongo.Database, productsCollection, countersCollection string) *MongoProductRepository {
	return &MongoProductRepository{
		client:   db.Client(),
		products: db.Collection(productsCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureIndexes creates the unique Product_ID index
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "Product_ID", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_product_id"),
	})
	return database.MapMongoError(err)
}

func (r *MongoProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	cursor, err := r.products.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	defer cursor.Close(ctx)

	products := make([]domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, database.MapMongoError(err)
	}
	return products, nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.products.FindOne(ctx, bson.M{"Product_ID": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFoundError(id)
	}
	if err != nil {
		return nil, database.MapMongoError(err)
	}
	return &product, nil
}

// ReplaceAll runs delete and insert in one transaction. On a standalone
// server it falls back to two unguarded phases and reports which one failed.
func (r *MongoProductRepository) ReplaceAll(ctx context.Context, rows []domain.Product) error {
	session, err := r.client.StartSession()
	if err != nil {
		return &apperror.PhaseError{Phase: apperror.PhaseDelete, Err: database.MapMongoError(err)}
	}
	defer session.EndSession(ctx)

	phase := apperror.PhaseDelete
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		phase = apperror.PhaseDelete
		if _, err := r.products.DeleteMany(sc, bson.D{}); err != nil {
			return nil, err
		}
		phase = apperror.PhaseInsert
		if err := r.insertAll(sc, rows); err != nil {
			return nil, err
		}
		phase = apperror.PhaseCommit
		return nil, nil
	})
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeIllegalOperation {
		logger.Warn(ctx).Msg("Transactions unavailable, replacing catalog without rollback")
		return r.replaceSequential(ctx, rows)
	}
	return &apperror.PhaseError{Phase: phase, Err: database.MapMongoError(err)}
}

func (r *MongoProductRepository) replaceSequential(ctx context.Context, rows []domain.Product) error {
	if _, err := r.products.DeleteMany(ctx, bson.D{}); err != nil {
		return &apperror.PhaseError{Phase: apperror.PhaseDelete, Err: database.MapMongoError(err)}
	}
	if err := r.insertAll(ctx, rows); err != nil {
		return &apperror.PhaseError{Phase: apperror.PhaseInsert, Committed: true, Err: database.MapMongoError(err)}
	}
	return nil
}

func (r *MongoProductRepository) insertAll(ctx context.Context, rows []domain.Product) error {
	if len(rows) == 0 {
		return nil
	}
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	_, err := r.products.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func (r *MongoProductRepository) Upsert(ctx context.Context, p domain.Product) error {
	_, err := r.products.UpdateOne(ctx,
		bson.M{"Product_ID": p.ID},
		bson.M{"$set": p},
		options.Update().SetUpsert(true),
	)
	return database.MapMongoError(err)
}

func (r *MongoProductRepository) UpdateDerived(ctx context.Context, derived map[string]domain.Derived) error {
	if len(derived) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(derived))
	for id, d := range derived {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"Product_ID": id}).
			SetUpdate(bson.M{"$set": bson.M{
				"Revenue":              d.Revenue,
				"Recommendation_Score": d.RecommendationScore,
			}}))
	}
	_, err := r.products.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return database.MapMongoError(err)
}

func (r *MongoProductRepository) AdjustStock(ctx context.Context, id string, qty int) (*domain.Product, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"Stock":        bson.M{"$subtract": bson.A{"$Stock", qty}},
			"Sales_Volume": bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$Sales_Volume", qty}}}},
		}}},
	}

	var product domain.Product
	err := r.products.FindOneAndUpdate(ctx,
		bson.M{"Product_ID": id, "Stock": bson.M{"$gte": qty}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.MapMongoError(err)
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, domain.InsufficientStockError(id, current.Stock)
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.products.DeleteOne(ctx, bson.M{"Product_ID": id})
	if err != nil {
		return false, database.MapMongoError(err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoProductRepository) NextID(ctx context.Context) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to reserve product id: %w", database.MapMongoError(err))
	}
	return domain.FormatID(counter.Seq), nil
}

func (r *MongoProductRepository) SyncSequence(ctx context.Context, n int64) error {
	_, err := r.counters.UpdateOne(ctx,
		bson.M{"_id": productSequence},
		bson.M{"$max": bson.M{"seq": n}},
		options.Update().SetUpsert(true),
	)
	return database.MapMongoError(err)
}
