// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/epq-service/internal/domain/model"
)

type MockCostOptimizer struct {
	mock.Mock
}

func (m *MockCostOptimizer) Optimize(params model.CostParameters) (model.OptimizationResult, error) {
	args := m.Called(params)
	return args.Get(0).(model.OptimizationResult), args.Error(1)
}

func (m *MockCostOptimizer) OptimizePortfolio(items []model.PortfolioItem) (model.PortfolioResult, error) {
	args := m.Called(items)
	return args.Get(0).(model.PortfolioResult), args.Error(1)
}

func (m *MockCostOptimizer) InvalidateCache() {
	m.Called()
}
