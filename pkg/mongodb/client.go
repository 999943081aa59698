package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const pingTimeout = 5 * time.Second

// Config describes the scheduler's MongoDB deployment
type Config struct {
	URI      string
	Database string
	// AppName shows up in server logs and currentOp
	AppName        string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

// DefaultConfig points at a local single-node deployment
func DefaultConfig() *Config {
	return &Config{
		URI:            "mongodb://localhost:27017",
		Database:       "aips_scheduler",
		AppName:        "aips-scheduler",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    100,
		MinPoolSize:    5,
	}
}

func (c *Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(c.ConnectTimeout).
		SetServerSelectionTimeout(c.ConnectTimeout).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	return opts
}

// Client is a connected MongoDB client bound to the scheduler database
type Client struct {
	mongo  *mongo.Client
	db     *mongo.Database
	config *Config
}

// NewClient connects and verifies the primary is reachable. A failed ping
// disconnects before returning.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config.Database == "" {
		return nil, fmt.Errorf("mongodb: database name is required")
	}

	mc, err := mongo.Connect(ctx, config.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	c := &Client{mongo: mc, db: mc.Database(config.Database), config: config}
	if err := c.HealthCheck(ctx); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return c, nil
}

// Database returns the scheduler database
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Collection returns a handle on a scheduler collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// HealthCheck pings the primary with a bounded timeout
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.mongo.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.mongo.Disconnect(ctx)
}
