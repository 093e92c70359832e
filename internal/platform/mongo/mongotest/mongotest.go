//go:build integration

// Package mongotest starts a disposable MongoDB container for integration tests.
package mongotest

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"

	platformmongo "cms_backend/internal/platform/mongo"
)

// Image is the server version the adapters are tested against.
const Image = "mongo:7"

// Start runs a container for the duration of the test and returns a fresh database.
func Start(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, Image)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "failed to start mongo container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := platformmongo.Connect(ctx, platformmongo.Config{
		URL:      uri,
		Database: "cms_test_" + ulid.Make().String(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store.Database()
}
