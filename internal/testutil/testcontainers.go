//go:build integration

// Package testutil provides the MongoDB test environment for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// Environment overrides for the test database.
const (
	// ImageEnv selects the MongoDB image started by SetupMongoDB.
	ImageEnv = "MONGO_TEST_IMAGE"
	// URIEnv points the tests at an already running MongoDB instead of a container.
	URIEnv = "MONGO_TEST_URI"
)

const defaultImage = "mongo:7.0"

// MongoDBContainer is a MongoDB instance for tests. Container is nil when the
// instance comes from MONGO_TEST_URI.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB returns a MongoDB for tests: the instance named by MONGO_TEST_URI, or a
// fresh testcontainer. Prefer GetSharedMongoDB with TestMain to reuse one per package.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	if uri := os.Getenv(URIEnv); uri != "" {
		return &MongoDBContainer{URI: uri}, nil
	}

	image := os.Getenv(ImageEnv)
	if image == "" {
		image = defaultImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("start %s container: %w", image, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("container connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container. External instances are left running.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate container: %w", err)
	}
	return nil
}
