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

const schedulesCollection = "schedules"

// ScheduleRepository implements domain.ScheduleRepository using MongoDB
type ScheduleRepository struct {
	collection *pkgmongo.InstrumentedCollection
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(client *pkgmongo.InstrumentedClient) *ScheduleRepository {
	repo := &ScheduleRepository{collection: client.Collection(schedulesCollection)}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ScheduleRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "scheduleId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "blocks.orderId", Value: 1}},
		},
	}

	_, _ = r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save upserts a schedule run by its ID
func (r *ScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"scheduleId": schedule.ScheduleID}
	update := bson.M{"$set": schedule}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// FindByID retrieves a schedule run by its ID, nil when it does not exist
func (r *ScheduleRepository) FindByID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := r.collection.FindOne(ctx, bson.M{"scheduleId": scheduleID}, &schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// FindRecent retrieves the most recent runs, newest first
func (r *ScheduleRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Schedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	schedules := make([]*domain.Schedule, 0)
	if err := r.collection.FindAll(ctx, bson.M{}, &schedules, opts); err != nil {
		return nil, err
	}
	return schedules, nil
}
