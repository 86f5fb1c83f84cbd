//go:build !integration

package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/domain/model"
)

func newSQLiteRepo(t *testing.T) *SQLiteHistoryRepository {
	t.Helper()
	repo, err := NewSQLiteHistoryRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteHistoryRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	base := time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC)

	first := historyRecord(model.HistoryKindSingle, "", base, 1000)
	require.NoError(t, repo.Append(ctx, first))
	assert.Equal(t, "1", first.ID)

	batch := []*model.HistoryRecord{
		historyRecord(model.HistoryKindPortfolio, "metal", base.Add(time.Minute), 1200),
		historyRecord(model.HistoryKindPortfolio, "plastic", base.Add(2*time.Minute), 800),
	}
	require.NoError(t, repo.AppendMany(ctx, batch))
	assert.NotEmpty(t, batch[0].ID)
	assert.NotEmpty(t, batch[1].ID)

	all, err := repo.List(ctx, model.HistoryQueryOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "plastic", all[0].Label, "newest first")
	assert.Equal(t, first.ID, all[2].ID)
	assert.Equal(t, base, all[2].Timestamp)
	assert.Equal(t, first.Parameters, all[2].Parameters)
	assert.True(t, all[2].Convex)
	assert.InDelta(t, 447.2136, all[2].TotalCost, 1e-12)

	portfolio, err := repo.List(ctx, model.HistoryQueryOptions{Kind: model.HistoryKindPortfolio, Limit: 1})
	require.NoError(t, err)
	require.Len(t, portfolio, 1)
	assert.Equal(t, "plastic", portfolio[0].Label)
}

func TestSQLiteHistoryRepository_Count(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)
	now := time.Now().UTC()

	require.NoError(t, repo.AppendMany(ctx, []*model.HistoryRecord{
		historyRecord(model.HistoryKindSingle, "", now, 1000),
		historyRecord(model.HistoryKindSingle, "", now, 1000),
		historyRecord(model.HistoryKindPortfolio, "a", now, 1000),
	}))

	tests := []struct {
		kind     string
		expected int64
	}{
		{"", 3},
		{model.HistoryKindSingle, 2},
		{model.HistoryKindPortfolio, 1},
		{"other", 0},
	}
	for _, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			n, err := repo.Count(ctx, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestSQLiteHistoryRepository_DefaultsTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	rec := historyRecord(model.HistoryKindSingle, "", time.Time{}, 1000)
	require.NoError(t, repo.Append(ctx, rec))
	assert.False(t, rec.Timestamp.IsZero())
	assert.NoError(t, repo.AppendMany(ctx, nil))
}

func TestSQLiteHistoryRepository_ReopensExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	repo, err := NewSQLiteHistoryRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, historyRecord(model.HistoryKindSingle, "", time.Now(), 1000)))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteHistoryRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, reopened.HealthCheck(ctx))
}
