package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	pkgmongo "github.com/dallyp22/Scheduler-VS/pkg/mongodb"
)

const (
	changeoverActualsCollection = "changeover_actuals"
	productionActualsCollection = "production_actuals"
)

// ActualsRepository implements domain.ActualsRepository using MongoDB
type ActualsRepository struct {
	changeovers *pkgmongo.InstrumentedCollection
	production  *pkgmongo.InstrumentedCollection
}

// NewActualsRepository creates a new ActualsRepository
func NewActualsRepository(client *pkgmongo.InstrumentedClient) *ActualsRepository {
	repo := &ActualsRepository{
		changeovers: client.Collection(changeoverActualsCollection),
		production:  client.Collection(productionActualsCollection),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ActualsRepository) ensureIndexes(ctx context.Context) {
	_, _ = r.changeovers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "fromSkuId", Value: 1}, {Key: "toSkuId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "recordedAt", Value: -1}},
		},
	})
	_, _ = r.production.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "recordedAt", Value: -1}},
		},
	})
}

// SaveChangeover stores a measured changeover
func (r *ActualsRepository) SaveChangeover(ctx context.Context, actual domain.ChangeoverActual) error {
	if _, err := r.changeovers.InsertOne(ctx, actual); err != nil {
		return fmt.Errorf("failed to save changeover actual: %w", err)
	}
	return nil
}

// SaveProduction stores measured production performance for an order
func (r *ActualsRepository) SaveProduction(ctx context.Context, actual domain.ProductionActual) error {
	if _, err := r.production.InsertOne(ctx, actual); err != nil {
		return fmt.Errorf("failed to save production actual: %w", err)
	}
	return nil
}

type changeoverHistoryRow struct {
	Pair           domain.PairKey `bson:"_id"`
	Count          int            `bson:"count"`
	MeanMinutes    float64        `bson:"meanMinutes"`
	StdDevMinutes  float64        `bson:"stdDevMinutes"`
	LastRecordedAt time.Time      `bson:"lastRecordedAt"`
}

// ChangeoverHistory summarizes recorded changeovers per pair on the server
func (r *ActualsRepository) ChangeoverHistory(ctx context.Context) (map[domain.PairKey]domain.ChangeoverHistory, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "fromSkuId", Value: "$fromSkuId"},
				{Key: "toSkuId", Value: "$toSkuId"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "meanMinutes", Value: bson.D{{Key: "$avg", Value: "$actualMinutes"}}},
			{Key: "stdDevMinutes", Value: bson.D{{Key: "$stdDevPop", Value: "$actualMinutes"}}},
			{Key: "lastRecordedAt", Value: bson.D{{Key: "$max", Value: "$recordedAt"}}},
		}}},
	}

	var rows []changeoverHistoryRow
	if err := r.changeovers.AggregateAll(ctx, pipeline, &rows); err != nil {
		return nil, fmt.Errorf("failed to summarize changeover actuals: %w", err)
	}

	history := make(map[domain.PairKey]domain.ChangeoverHistory, len(rows))
	for _, row := range rows {
		history[row.Pair] = domain.ChangeoverHistory{
			Count:          row.Count,
			MeanMinutes:    row.MeanMinutes,
			StdDevMinutes:  row.StdDevMinutes,
			LastRecordedAt: row.LastRecordedAt,
		}
	}
	return history, nil
}

// ProductionByOrder retrieves the latest production actual per order
func (r *ActualsRepository) ProductionByOrder(ctx context.Context, orderIDs []string) (map[string]domain.ProductionActual, error) {
	latest := make(map[string]domain.ProductionActual, len(orderIDs))
	if len(orderIDs) == 0 {
		return latest, nil
	}

	filter := bson.M{"orderId": bson.M{"$in": orderIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}})

	var actuals []domain.ProductionActual
	if err := r.production.FindAll(ctx, filter, &actuals, opts); err != nil {
		return nil, fmt.Errorf("failed to load production actuals: %w", err)
	}

	// ascending by time, so the last write per order wins
	for _, a := range actuals {
		latest[a.OrderID] = a
	}
	return latest, nil
}
