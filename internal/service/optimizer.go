// Package service contains the business logic for the EPQ optimizer service.
package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/metrics"
	"github.com/guttosm/epq-service/internal/service/cache"
	"github.com/guttosm/epq-service/internal/symbolic"
)

// displayPlaces is the rounding applied to presentation values.
const displayPlaces = 2

// CostOptimizer defines the lot size optimisation operations.
type CostOptimizer interface {
	Optimize(params model.CostParameters) (model.OptimizationResult, error)
	OptimizePortfolio(items []model.PortfolioItem) (model.PortfolioResult, error)
	// InvalidateCache clears cached results
	InvalidateCache()
}

// Option configures an OptimizerService.
type Option func(*OptimizerService)

// OptimizerService implements CostOptimizer by deriving TC(Q) symbolically
// and solving the first-order condition exactly.
type OptimizerService struct {
	cache cache.Cache
}

// NewOptimizerService creates a new OptimizerService with the given options.
func NewOptimizerService(opts ...Option) *OptimizerService {
	s := &OptimizerService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *OptimizerService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, 16)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *OptimizerService) {
		s.cache = c
	}
}

// Optimize validates params, derives TC(Q) and returns its exact minimum.
func (s *OptimizerService) Optimize(params model.CostParameters) (model.OptimizationResult, error) {
	start := time.Now()
	result, err := s.optimize(params)
	metrics.RecordOptimization(model.HistoryKindSingle, time.Since(start), outcome(err))
	return result, err
}

func (s *OptimizerService) optimize(params model.CostParameters) (model.OptimizationResult, error) {
	if err := params.Validate(); err != nil {
		return model.OptimizationResult{}, err
	}

	key := params.Fingerprint()
	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			return result, nil
		}
	}

	result, err := solve(params)
	if err != nil {
		return model.OptimizationResult{}, err
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result, nil
}

// OptimizePortfolio optimises every item independently and sums the minimal
// costs. The first failing item aborts the run.
func (s *OptimizerService) OptimizePortfolio(items []model.PortfolioItem) (model.PortfolioResult, error) {
	start := time.Now()
	result, err := s.optimizePortfolio(items)
	metrics.RecordOptimization(model.HistoryKindPortfolio, time.Since(start), outcome(err))
	return result, err
}

func (s *OptimizerService) optimizePortfolio(items []model.PortfolioItem) (model.PortfolioResult, error) {
	if len(items) == 0 {
		return model.PortfolioResult{}, &model.InvalidInputError{Field: "items", Reason: "at least one item is required"}
	}

	out := model.PortfolioResult{Items: make([]model.PortfolioItemResult, 0, len(items))}
	total := decimal.Zero
	for i, item := range items {
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("item-%d", i+1)
		}
		r, err := s.optimize(item.Parameters)
		if err != nil {
			return model.PortfolioResult{}, fmt.Errorf("item %q: %w", name, err)
		}
		out.Items = append(out.Items, model.PortfolioItemResult{Name: name, Result: r})
		total = total.Add(decimal.NewFromFloat(r.TotalCost))
	}

	out.TotalCost = total.InexactFloat64()
	if !representable(out.TotalCost) {
		return model.PortfolioResult{}, &model.NoFeasibleSolutionError{Reason: "portfolio total outside float64 range"}
	}
	out.Display = total.StringFixed(displayPlaces)
	return out, nil
}

// InvalidateCache clears the result cache.
func (s *OptimizerService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Close stops the cache cleanup goroutines.
func (s *OptimizerService) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// solve runs the exact derivation for validated parameters.
func solve(params model.CostParameters) (model.OptimizationResult, error) {
	values, err := bindings(params)
	if err != nil {
		return model.OptimizationResult{}, err
	}

	tc := symbolic.Bind(TotalCostExpression(params.HasProductionRate()), values)
	m, err := minimize(tc, SymLotSize)
	if err != nil {
		return model.OptimizationResult{}, err
	}

	lot := m.at.Float64()
	cost := m.cost.Float64()
	curvature := m.curvature.Float64()
	if !representable(lot) || !representable(cost) || !representable(curvature) {
		return model.OptimizationResult{}, &model.NoFeasibleSolutionError{Reason: "optimum outside float64 range"}
	}

	return model.OptimizationResult{
		OptimalLotSize:           lot,
		TotalCost:                cost,
		Convex:                   true,
		SecondDerivative:         curvature,
		ExactLotSize:             m.at.String(),
		ExactTotalCost:           m.cost.String(),
		CostFunction:             tc.String(),
		FirstDerivative:          m.first.String(),
		SecondDerivativeFunction: m.second.String(),
		Display: model.Display{
			OptimalLotSize: decimal.NewFromFloat(lot).StringFixed(displayPlaces),
			TotalCost:      decimal.NewFromFloat(cost).StringFixed(displayPlaces),
		},
	}, nil
}

// representable reports whether an exact positive quantity survived the
// conversion to float64 without overflowing or flushing to zero.
func representable(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// outcome maps an optimisation error to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, model.ErrNoFeasibleSolution):
		return "no_feasible_solution"
	case errors.Is(err, model.ErrNonConvexResult):
		return "non_convex"
	}
	return "error"
}
