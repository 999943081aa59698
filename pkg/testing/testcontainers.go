package testing

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	pkgmongo "github.com/dallyp22/Scheduler-VS/pkg/mongodb"
)

// MongoDBContainer wraps a testcontainers MongoDB instance
type MongoDBContainer struct {
	Container *mongodb.MongoDBContainer
	URI       string
}

// NewMongoDBContainer starts a MongoDB testcontainer
func NewMongoDBContainer(ctx context.Context) (*MongoDBContainer, error) {
	mongoContainer, err := mongodb.Run(ctx,
		"mongo:6",
		mongodb.WithUsername("test"),
		mongodb.WithPassword("test"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start mongodb container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{
		Container: mongoContainer,
		URI:       uri,
	}, nil
}

// Close terminates the MongoDB container
func (m *MongoDBContainer) Close(ctx context.Context) error {
	if m.Container != nil {
		return m.Container.Terminate(ctx)
	}
	return nil
}

// GetClient connects a scheduler MongoDB client to the container using database
func (m *MongoDBContainer) GetClient(ctx context.Context, database string) (*pkgmongo.Client, error) {
	config := pkgmongo.DefaultConfig()
	config.URI = m.URI
	config.Database = database
	config.MinPoolSize = 0

	return pkgmongo.NewClient(ctx, config)
}
