// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/epq-service/internal/domain/model"
)

type MockDemandEstimator struct {
	mock.Mock
}

func (m *MockDemandEstimator) Estimate(ctx context.Context, r io.Reader) (model.DemandEstimate, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(model.DemandEstimate), args.Error(1)
}
