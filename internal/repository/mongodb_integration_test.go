//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := NewMongoDB(getSharedContainerURI(), sanitizeDBName(t.Name()))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("collections are wired", func(t *testing.T) {
		assert.Equal(t, "history", db.History.Name())
		assert.Equal(t, "logs", db.Logs.Name())
	})

	t.Run("health check", func(t *testing.T) {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		assert.NoError(t, db.HealthCheck(pingCtx))
	})

	t.Run("history index exists", func(t *testing.T) {
		cursor, err := db.History.Indexes().List(ctx)
		require.NoError(t, err)

		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		var keys []string
		for _, idx := range indexes {
			keys = append(keys, idx["name"].(string))
		}
		assert.Contains(t, keys, "kind_1_timestamp_-1")
	})

	t.Run("set logs TTL", func(t *testing.T) {
		assert.NoError(t, db.SetLogsTTL(ctx, 30))
		assert.NoError(t, db.SetLogsTTL(ctx, 7), "replacing the ttl index")
		assert.Error(t, db.SetLogsTTL(ctx, 0))
	})
}

func TestNewMongoDB_Unreachable(t *testing.T) {
	cfg := DefaultMongoConfig()
	cfg.ConnectTimeout = 500 * time.Millisecond
	cfg.ServerSelectionTimeout = 500 * time.Millisecond

	_, err := NewMongoDBWithConfig("mongodb://127.0.0.1:1", "unreachable", cfg)
	assert.Error(t, err)
}
