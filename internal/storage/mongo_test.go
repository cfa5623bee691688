package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestMongo(t *testing.T) (*MongoStore, func()) {
	if testing.Short() {
		t.Skip("skipping mongodb container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	cleanup := func() {
		if err := db.Client().Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect: %s", err)
		}
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return NewMongoStore(db), cleanup
}

func TestMongoStore(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()

	exerciseStore(t, store)
}

func TestConnectMongoDB_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mongodb dial test in short mode")
	}
	start := time.Now()
	db, err := ConnectMongoDB(context.Background(), "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200", "testdb")
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "ping mongo device store")
	assert.Less(t, time.Since(start), mongoDialTimeout+2*time.Second)
}
