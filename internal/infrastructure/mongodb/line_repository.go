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

const linesCollection = "production_lines"

// LineRepository implements domain.LineRepository using MongoDB
type LineRepository struct {
	collection *pkgmongo.InstrumentedCollection
}

// NewLineRepository creates a new LineRepository
func NewLineRepository(client *pkgmongo.InstrumentedClient) *LineRepository {
	repo := &LineRepository{collection: client.Collection(linesCollection)}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LineRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "lineId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, _ = r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save upserts a line by its ID
func (r *LineRepository) Save(ctx context.Context, line *domain.ProductionLine) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"lineId": line.ID}
	update := bson.M{"$set": line}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save line: %w", err)
	}
	return nil
}

// FindAll retrieves every line ordered by ID
func (r *LineRepository) FindAll(ctx context.Context) ([]domain.ProductionLine, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lineId", Value: 1}})

	lines := make([]domain.ProductionLine, 0)
	if err := r.collection.FindAll(ctx, bson.M{}, &lines, opts); err != nil {
		return nil, err
	}
	return lines, nil
}
