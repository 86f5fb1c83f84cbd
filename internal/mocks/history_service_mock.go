// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/epq-service/internal/domain/model"
)

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Record(ctx context.Context, requestID string, params model.CostParameters, result model.OptimizationResult) error {
	args := m.Called(ctx, requestID, params, result)
	return args.Error(0)
}

func (m *MockHistoryService) RecordPortfolio(ctx context.Context, requestID string, items []model.PortfolioItem, result model.PortfolioResult) error {
	args := m.Called(ctx, requestID, items, result)
	return args.Error(0)
}

func (m *MockHistoryService) List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.HistoryRecord), args.Error(1)
}

func (m *MockHistoryService) Count(ctx context.Context, kind string) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}
