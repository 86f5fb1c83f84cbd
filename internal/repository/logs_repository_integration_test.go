//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	repo := NewLogsRepository(db)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    "optimisation served",
		RequestID:  "req-optimize",
		Method:     "POST",
		Path:       "/api/v1/optimize",
		StatusCode: 200,
		Subject:    "planner",
		ActionType: "optimize",
	}))
	require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
		{Level: "warn", Message: "rejected", RequestID: "req-bad", Path: "/api/v1/optimize", StatusCode: 400},
		{Level: "error", Message: "history down", RequestID: "req-hist", Path: "/api/v1/history", StatusCode: 503},
	}))

	tests := []struct {
		name     string
		opts     LogQueryOptions
		expected int
	}{
		{"by request id", LogQueryOptions{RequestID: "req-optimize"}, 1},
		{"by level", LogQueryOptions{Level: "error"}, 1},
		{"by subject", LogQueryOptions{Subject: "planner"}, 1},
		{"by path prefix", LogQueryOptions{Path: "/api/v1/optimize"}, 2},
		{"path is matched literally", LogQueryOptions{Path: "/api/v1/.*"}, 0},
		{"by status", LogQueryOptions{StatusCode: 503}, 1},
		{"limit", LogQueryOptions{Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := repo.Query(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, entries, tt.expected)
		})
	}

	t.Run("count", func(t *testing.T) {
		n, err := repo.Count(ctx, LogQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}
