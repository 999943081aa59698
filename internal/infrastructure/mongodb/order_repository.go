package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	pkgmongo "github.com/dallyp22/Scheduler-VS/pkg/mongodb"
)

const ordersCollection = "production_orders"

// OrderRepository implements domain.OrderRepository using MongoDB.
// Orders keep their insertion sequence, which is the queue order the
// sequencer consumes.
type OrderRepository struct {
	collection *pkgmongo.InstrumentedCollection
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(client *pkgmongo.InstrumentedClient) *OrderRepository {
	repo := &OrderRepository{collection: client.Collection(ordersCollection)}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *OrderRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "dueDate", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "skuId", Value: 1}},
		},
	}

	_, _ = r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save upserts an order by its ID
func (r *OrderRepository) Save(ctx context.Context, order *domain.ProductionOrder) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"orderId": order.ID}
	update := bson.M{"$set": order}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// FindByStatus retrieves orders in any of the given statuses in insertion order
func (r *OrderRepository) FindByStatus(ctx context.Context, statuses ...domain.OrderStatus) ([]domain.ProductionOrder, error) {
	filter := bson.M{}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	orders := make([]domain.ProductionOrder, 0)
	if err := r.collection.FindAll(ctx, filter, &orders, opts); err != nil {
		return nil, err
	}
	return orders, nil
}
