// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/epq-service/internal/domain/model"
)

type MockHistoryRepositoryInterface struct {
	mock.Mock
}

func (m *MockHistoryRepositoryInterface) Append(ctx context.Context, record *model.HistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepositoryInterface) AppendMany(ctx context.Context, records []*model.HistoryRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockHistoryRepositoryInterface) List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepositoryInterface) Count(ctx context.Context, kind string) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}
