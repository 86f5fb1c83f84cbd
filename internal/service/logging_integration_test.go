//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/circuitbreaker"
	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/repository"
	"github.com/guttosm/epq-service/internal/testutil"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, container.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(container.URI, testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	defer func() { _ = db.Close(ctx) }()

	logs := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)
	svc := NewLoggingService(logs)

	require.NoError(t, svc.CreateLog(ctx, &model.LogEntry{
		Level:      "info",
		Message:    "optimised",
		RequestID:  "req-it",
		ActionType: model.ActionOptimize,
	}))
	require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{
		{Level: "warn", Message: "invalid"},
		{Level: "warn", Message: "invalid"},
	}))

	entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{RequestID: "req-it"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionOptimize, entries[0].ActionType)

	n, err := svc.CountLogs(ctx, model.LogQueryOptions{Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
