//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/mocks"
)

var eoqParams = model.CostParameters{Demand: 1000, ManufacturerSetupCost: 50, HoldingCost: 2}

func TestHistoryService_Record(t *testing.T) {
	result := model.OptimizationResult{OptimalLotSize: 223.6068, TotalCost: 447.2136, Convex: true}

	t.Run("appends single row", func(t *testing.T) {
		repo := new(mocks.MockHistoryRepositoryInterface)
		repo.On("Append", mock.Anything, mock.MatchedBy(func(r *model.HistoryRecord) bool {
			return r.Kind == model.HistoryKindSingle &&
				r.RequestID == "req-1" &&
				r.Parameters == eoqParams &&
				r.TotalCost == result.TotalCost &&
				r.Convex
		})).Return(nil)

		err := NewHistoryService(repo, "sqlite").Record(context.Background(), "req-1", eoqParams, result)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("returns backend error", func(t *testing.T) {
		repo := new(mocks.MockHistoryRepositoryInterface)
		repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		err := NewHistoryService(repo, "sqlite").Record(context.Background(), "", eoqParams, result)
		assert.EqualError(t, err, "disk full")
	})

	t.Run("no repository is a no-op", func(t *testing.T) {
		assert.NoError(t, NewHistoryService(nil, "none").Record(context.Background(), "", eoqParams, result))
	})
}

func TestHistoryService_RecordPortfolio(t *testing.T) {
	metal := model.CostParameters{Demand: 1200, ManufacturerSetupCost: 40, HoldingCost: 3}
	items := []model.PortfolioItem{
		{Name: "eoq", Parameters: eoqParams},
		{Parameters: metal},
	}
	result := model.PortfolioResult{Items: []model.PortfolioItemResult{
		{Name: "eoq", Result: model.OptimizationResult{TotalCost: 447.21, Convex: true}},
		{Name: "item-2", Result: model.OptimizationResult{TotalCost: 600, Convex: true}},
	}}

	repo := new(mocks.MockHistoryRepositoryInterface)
	repo.On("AppendMany", mock.Anything, mock.MatchedBy(func(rs []*model.HistoryRecord) bool {
		return len(rs) == 2 &&
			rs[0].Kind == model.HistoryKindPortfolio && rs[0].Label == "eoq" && rs[0].Parameters == eoqParams &&
			rs[1].Label == "item-2" && rs[1].Parameters == metal && rs[1].TotalCost == 600
	})).Return(nil)

	svc := NewHistoryService(repo, "mongodb")
	require.NoError(t, svc.RecordPortfolio(context.Background(), "req-2", items, result))
	require.NoError(t, svc.RecordPortfolio(context.Background(), "req-3", nil, model.PortfolioResult{}))
	repo.AssertNumberOfCalls(t, "AppendMany", 1)
}

func TestHistoryService_List(t *testing.T) {
	opts := model.HistoryQueryOptions{Kind: model.HistoryKindSingle, Limit: 10}

	tests := []struct {
		name        string
		repo        func() *mocks.MockHistoryRepositoryInterface
		expectedLen int
		expectedErr error
	}{
		{
			name: "returns records",
			repo: func() *mocks.MockHistoryRepositoryInterface {
				m := new(mocks.MockHistoryRepositoryInterface)
				m.On("List", mock.Anything, opts).Return([]*model.HistoryRecord{{ID: "1"}, {ID: "2"}}, nil)
				return m
			},
			expectedLen: 2,
		},
		{
			name: "empty history is an empty slice",
			repo: func() *mocks.MockHistoryRepositoryInterface {
				m := new(mocks.MockHistoryRepositoryInterface)
				m.On("List", mock.Anything, opts).Return(nil, nil)
				return m
			},
		},
		{
			name:        "disabled",
			repo:        func() *mocks.MockHistoryRepositoryInterface { return nil },
			expectedErr: ErrHistoryDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *HistoryServiceImpl
			if m := tt.repo(); m != nil {
				svc = NewHistoryService(m, "sqlite")
			} else {
				svc = NewHistoryService(nil, "none")
			}

			records, err := svc.List(context.Background(), opts)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Len(t, records, tt.expectedLen)
		})
	}
}

func TestHistoryService_Count(t *testing.T) {
	repo := new(mocks.MockHistoryRepositoryInterface)
	repo.On("Count", mock.Anything, model.HistoryKindPortfolio).Return(int64(4), nil)

	n, err := NewHistoryService(repo, "sqlite").Count(context.Background(), model.HistoryKindPortfolio)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	_, err = NewHistoryService(nil, "none").Count(context.Background(), "")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}
