package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	pkgmongo "github.com/dallyp22/Scheduler-VS/pkg/mongodb"
)

const skusCollection = "skus"

// SKURepository implements domain.SKURepository using MongoDB
type SKURepository struct {
	collection *pkgmongo.InstrumentedCollection
}

// NewSKURepository creates a new SKURepository
func NewSKURepository(client *pkgmongo.InstrumentedClient) *SKURepository {
	repo := &SKURepository{collection: client.Collection(skusCollection)}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *SKURepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "skuId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "family", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "compatibility.allowedLines", Value: 1}},
		},
	}

	_, _ = r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save upserts a SKU by its ID
func (r *SKURepository) Save(ctx context.Context, sku *domain.SKU) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"skuId": sku.ID}
	update := bson.M{"$set": sku}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save sku: %w", err)
	}
	return nil
}

// FindByID retrieves a SKU by its ID, nil when it does not exist
func (r *SKURepository) FindByID(ctx context.Context, skuID string) (*domain.SKU, error) {
	var sku domain.SKU
	err := r.collection.FindOne(ctx, bson.M{"skuId": skuID}, &sku)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// FindAll retrieves every SKU ordered by ID
func (r *SKURepository) FindAll(ctx context.Context) ([]domain.SKU, error) {
	opts := options.Find().SetSort(bson.D{{Key: "skuId", Value: 1}})

	skus := make([]domain.SKU, 0)
	if err := r.collection.FindAll(ctx, bson.M{}, &skus, opts); err != nil {
		return nil, err
	}
	return skus, nil
}
