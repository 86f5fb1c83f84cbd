package model

// OptimizationResult is the outcome of minimising TC(Q).
//
// @Description Optimal lot size, minimal total cost and the derivation behind them
type OptimizationResult struct {
	// OptimalLotSize is Q*
	OptimalLotSize float64 `json:"optimal_lot_size" example:"223.6068"`
	// TotalCost is TC(Q*)
	TotalCost float64 `json:"total_cost" example:"447.2136"`
	// Convex is true when the second derivative at Q* is positive
	Convex bool `json:"convex" example:"true"`
	// SecondDerivative is d²TC/dQ² evaluated at Q*
	SecondDerivative float64 `json:"second_derivative" example:"0.0179"`
	// ExactLotSize is the closed form of Q*
	ExactLotSize string `json:"exact_lot_size" example:"100*sqrt(5)"`
	// ExactTotalCost is the closed form of TC(Q*)
	ExactTotalCost string `json:"exact_total_cost" example:"200*sqrt(5)"`
	// CostFunction is TC(Q) with the parameters bound
	CostFunction string `json:"cost_function" example:"50000/Q + Q"`
	// FirstDerivative is dTC/dQ with the parameters bound
	FirstDerivative string `json:"first_derivative" example:"-50000/Q^2 + 1"`
	// SecondDerivativeFunction is d²TC/dQ² with the parameters bound
	SecondDerivativeFunction string `json:"second_derivative_function" example:"100000/Q^3"`
	// Display holds the values rounded for presentation
	Display Display `json:"display"`
} // @name OptimizationResult

// Display holds presentation values rounded to two decimal places.
type Display struct {
	OptimalLotSize string `json:"optimal_lot_size" example:"223.61"`
	TotalCost      string `json:"total_cost" example:"447.21"`
} // @name Display

// PortfolioItem is one named product line in a portfolio.
type PortfolioItem struct {
	Name       string         `json:"name" yaml:"name" example:"metal"`
	Parameters CostParameters `json:"parameters" yaml:"parameters"`
} // @name PortfolioItem

// PortfolioItemResult pairs an item name with its optimum.
type PortfolioItemResult struct {
	Name   string             `json:"name" example:"metal"`
	Result OptimizationResult `json:"result"`
} // @name PortfolioItemResult

// PortfolioResult holds the per-item optima and their summed minimal cost.
type PortfolioResult struct {
	Items     []PortfolioItemResult `json:"items"`
	TotalCost float64               `json:"total_cost" example:"12345.67"`
	Display   string                `json:"display_total_cost" example:"12345.67"`
} // @name PortfolioResult
