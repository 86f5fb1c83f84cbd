package service

import (
	"errors"
	"fmt"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/symbolic"
)

// Symbols of the total cost model.
const (
	SymLotSize           = "Q"
	SymDemand            = "D"
	SymManufacturerSetup = "Sm"
	SymSupplierSetup     = "Sv"
	SymHoldingCost       = "h"
	SymDefectRate        = "alpha"
	SymDefectPenalty     = "p"
	SymProductionRate    = "P"
)

// TotalCostExpression builds TC(Q) with every parameter left symbolic:
//
//	TC(Q) = (Sm + Sv)·D/Q + h·(1 − α)·ρ·Q/2 + α·D·p
//
// where ρ = 1 − D/P with a finite production rate and 1 otherwise.
func TotalCostExpression(withProductionRate bool) symbolic.Expr {
	q := symbolic.S(SymLotSize)
	d := symbolic.S(SymDemand)
	alpha := symbolic.S(SymDefectRate)

	setup := symbolic.Quo(
		symbolic.Product(symbolic.Sum(symbolic.S(SymManufacturerSetup), symbolic.S(SymSupplierSetup)), d),
		q,
	)

	goodFraction := symbolic.Difference(symbolic.N(1), alpha)
	holding := symbolic.Product(symbolic.Frac(1, 2), symbolic.S(SymHoldingCost), goodFraction, q)
	if withProductionRate {
		rho := symbolic.Difference(symbolic.N(1), symbolic.Quo(d, symbolic.S(SymProductionRate)))
		holding = symbolic.Product(holding, rho)
	}

	penalty := symbolic.Product(alpha, d, symbolic.S(SymDefectPenalty))

	return symbolic.Sum(setup, holding, penalty)
}

// bindings converts parameters into exact rational constants.
func bindings(p model.CostParameters) (map[string]*symbolic.Num, error) {
	values := map[string]float64{
		SymDemand:            p.Demand,
		SymManufacturerSetup: p.ManufacturerSetupCost,
		SymSupplierSetup:     p.SupplierSetupCost,
		SymHoldingCost:       p.HoldingCost,
		SymDefectRate:        p.DefectRate,
		SymDefectPenalty:     p.DefectPenalty,
		SymProductionRate:    p.ProductionRate,
	}

	out := make(map[string]*symbolic.Num, len(values))
	for name, v := range values {
		n, err := symbolic.FromFloat(v)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
		out[name] = n
	}
	return out, nil
}

// minimum is the exact outcome of minimising a cost function in one variable.
type minimum struct {
	at        symbolic.Surd
	cost      symbolic.Surd
	curvature symbolic.Surd
	first     symbolic.Expr
	second    symbolic.Expr
}

// minimize finds the positive critical point of tc with the lowest cost and
// checks that it is a local minimum. tc must have every symbol other than v
// bound. Ties in cost keep the smaller critical point.
func minimize(tc symbolic.Expr, v string) (*minimum, error) {
	first := tc.Diff(v)
	second := first.Diff(v)

	cost, err := symbolic.ToLaurent(tc, v)
	if err != nil {
		return nil, fmt.Errorf("expand cost function: %w", err)
	}
	slope, err := symbolic.ToLaurent(first, v)
	if err != nil {
		return nil, fmt.Errorf("expand first derivative: %w", err)
	}
	curvature, err := symbolic.ToLaurent(second, v)
	if err != nil {
		return nil, fmt.Errorf("expand second derivative: %w", err)
	}

	roots, err := symbolic.SolvePositive(slope)
	switch {
	case errors.Is(err, symbolic.ErrIdenticallyZero):
		return nil, &model.NoFeasibleSolutionError{Reason: "cost does not depend on the lot size"}
	case err != nil:
		return nil, fmt.Errorf("solve first-order condition: %w", err)
	case len(roots) == 0:
		return nil, &model.NoFeasibleSolutionError{Reason: "first derivative has no positive real root"}
	}

	var best *minimum
	for _, r := range roots {
		c, err := cost.Eval(r)
		if err != nil {
			return nil, fmt.Errorf("evaluate cost at %s: %w", r, err)
		}
		if best != nil {
			cmp, err := c.Cmp(best.cost)
			if err != nil {
				// different quadratic fields; fall back to the rounded values
				cmp = compareFloat(c.Float64(), best.cost.Float64())
			}
			if cmp >= 0 {
				continue
			}
		}
		best = &minimum{at: r, cost: c}
	}

	k, err := curvature.Eval(best.at)
	if err != nil {
		return nil, fmt.Errorf("evaluate second derivative at %s: %w", best.at, err)
	}
	if k.Sign() <= 0 {
		return nil, &model.NonConvexResultError{Candidate: best.at.Float64(), SecondDerivative: k.Float64()}
	}

	best.curvature = k
	best.first = first
	best.second = second
	return best, nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
