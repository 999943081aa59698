package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
	"github.com/dallyp22/Scheduler-VS/pkg/tracing"
)

// InstrumentedClient wraps a MongoDB Client with metrics and tracing
type InstrumentedClient struct {
	client  *Client
	metrics *metrics.Metrics
	logger  *logging.Logger
	tracer  trace.Tracer
}

// NewInstrumentedClient creates a new instrumented MongoDB client
func NewInstrumentedClient(client *Client, m *metrics.Metrics, logger *logging.Logger) *InstrumentedClient {
	return &InstrumentedClient{
		client:  client,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer("mongodb"),
	}
}

// Collection returns an instrumented collection
func (c *InstrumentedClient) Collection(name string) *InstrumentedCollection {
	return &InstrumentedCollection{
		collection: c.client.Collection(name),
		name:       name,
		database:   c.client.config.Database,
		metrics:    c.metrics,
		logger:     c.logger,
		tracer:     c.tracer,
	}
}

// Close disconnects the client
func (c *InstrumentedClient) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}

// HealthCheck pings the primary inside a span
func (c *InstrumentedClient) HealthCheck(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "mongodb.ping",
		trace.WithAttributes(tracing.DatabaseSpanAttributes("mongodb", c.client.config.Database, "ping", "")...),
	)
	err := c.client.HealthCheck(ctx)
	tracing.Finish(span, err)
	return err
}

// InstrumentedCollection wraps a MongoDB Collection with metrics and tracing
type InstrumentedCollection struct {
	collection *mongo.Collection
	name       string
	database   string
	metrics    *metrics.Metrics
	logger     *logging.Logger
	tracer     trace.Tracer
}

// observe runs op inside a client span and records its duration and outcome
func (c *InstrumentedCollection) observe(ctx context.Context, operation string, op func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "mongodb."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(tracing.DatabaseSpanAttributes("mongodb", c.database, operation, c.name)...),
	)
	err := op(ctx)
	duration := time.Since(start)

	// a missing document is a normal lookup result
	success := err == nil || errors.Is(err, mongo.ErrNoDocuments)
	if c.metrics != nil {
		c.metrics.RecordMongoDBOperation(c.name, operation, success, duration)
	}
	if c.logger != nil {
		c.logger.DatabaseQuery(ctx, c.name, operation, duration, success)
	}

	if success {
		tracing.Finish(span, nil)
	} else {
		tracing.Finish(span, err)
	}
	return err
}

// Name returns the collection name
func (c *InstrumentedCollection) Name() string {
	return c.name
}

// Indexes returns the index view of the underlying collection
func (c *InstrumentedCollection) Indexes() mongo.IndexView {
	return c.collection.Indexes()
}

// InsertOne inserts a single document
func (c *InstrumentedCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	var result *mongo.InsertOneResult
	err := c.observe(ctx, "insertOne", func(ctx context.Context) error {
		var err error
		result, err = c.collection.InsertOne(ctx, document, opts...)
		return err
	})
	return result, err
}

// UpdateOne updates a single document
func (c *InstrumentedCollection) UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	var result *mongo.UpdateResult
	err := c.observe(ctx, "updateOne", func(ctx context.Context) error {
		var err error
		result, err = c.collection.UpdateOne(ctx, filter, update, opts...)
		return err
	})
	return result, err
}

// FindOne decodes the first matching document into out
func (c *InstrumentedCollection) FindOne(ctx context.Context, filter interface{}, out interface{}, opts ...*options.FindOneOptions) error {
	return c.observe(ctx, "findOne", func(ctx context.Context) error {
		return c.collection.FindOne(ctx, filter, opts...).Decode(out)
	})
}

// FindAll decodes every matching document into out, which must be a pointer to a slice
func (c *InstrumentedCollection) FindAll(ctx context.Context, filter interface{}, out interface{}, opts ...*options.FindOptions) error {
	return c.observe(ctx, "find", func(ctx context.Context) error {
		cursor, err := c.collection.Find(ctx, filter, opts...)
		if err != nil {
			return err
		}
		return cursor.All(ctx, out)
	})
}

// AggregateAll runs a pipeline and decodes every result into out
func (c *InstrumentedCollection) AggregateAll(ctx context.Context, pipeline interface{}, out interface{}, opts ...*options.AggregateOptions) error {
	return c.observe(ctx, "aggregate", func(ctx context.Context) error {
		cursor, err := c.collection.Aggregate(ctx, pipeline, opts...)
		if err != nil {
			return err
		}
		return cursor.All(ctx, out)
	})
}
