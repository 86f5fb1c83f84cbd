//go:build !integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/circuitbreaker"
	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/mocks"
	"github.com/guttosm/epq-service/internal/repository"
)

func newBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "wrapper-test",
	})
}

func TestHistoryRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	errDown := errors.New("connection refused")

	t.Run("passes calls through while closed", func(t *testing.T) {
		repo := new(mocks.MockHistoryRepositoryInterface)
		records := []*model.HistoryRecord{{Kind: model.HistoryKindSingle}}
		repo.On("List", ctx, model.HistoryQueryOptions{Limit: 5}).Return(records, nil)
		repo.On("Count", ctx, "").Return(int64(1), nil)
		repo.On("Append", ctx, records[0]).Return(nil)

		wrapped := repository.NewHistoryRepositoryWithCircuitBreaker(repo, newBreaker())

		got, err := wrapped.List(ctx, model.HistoryQueryOptions{Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, records, got)

		n, err := wrapped.Count(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		assert.NoError(t, wrapped.Append(ctx, records[0]))
		repo.AssertExpectations(t)
	})

	t.Run("open circuit reports history unavailable", func(t *testing.T) {
		repo := new(mocks.MockHistoryRepositoryInterface)
		repo.On("AppendMany", ctx, mock.Anything).Return(errDown).Once()

		cb := newBreaker()
		wrapped := repository.NewHistoryRepositoryWithCircuitBreaker(repo, cb)

		err := wrapped.AppendMany(ctx, []*model.HistoryRecord{{}})
		assert.ErrorIs(t, err, errDown)
		assert.True(t, cb.IsOpen())

		_, err = wrapped.List(ctx, model.HistoryQueryOptions{})
		assert.ErrorIs(t, err, repository.ErrHistoryUnavailable)
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)

		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		assert.Same(t, cb, wrapped.GetCircuitBreaker())
	})
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	entry := &repository.LogEntryDocument{Level: "info", Message: "request"}

	repo := new(mocks.MockLogsRepositoryInterface)
	repo.On("Create", ctx, entry).Return(errors.New("timeout")).Once()

	cb := newBreaker()
	wrapped := repository.NewLogsRepositoryWithCircuitBreaker(repo, cb)

	assert.Error(t, wrapped.Create(ctx, entry))
	assert.True(t, cb.IsOpen())

	assert.NoError(t, wrapped.Create(ctx, entry), "open circuit drops log entries")
	assert.NoError(t, wrapped.CreateMany(ctx, []*repository.LogEntryDocument{entry}))

	_, err := wrapped.Query(ctx, repository.LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	repo.AssertExpectations(t)
}
