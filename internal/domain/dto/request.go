// Package dto defines the HTTP request and response bodies of the EPQ API.
package dto

import "github.com/guttosm/epq-service/internal/domain/model"

// OptimizeRequest is the body of POST /api/optimize.
//
// @Description Cost parameters for a single lot size optimisation
type OptimizeRequest struct {
	Demand                float64 `json:"demand" example:"1000"`
	ManufacturerSetupCost float64 `json:"manufacturer_setup_cost" example:"50"`
	SupplierSetupCost     float64 `json:"supplier_setup_cost" example:"0"`
	HoldingCost           float64 `json:"holding_cost" example:"2"`
	DefectRate            float64 `json:"defect_rate" example:"0"`
	DefectPenalty         float64 `json:"defect_penalty" example:"0"`
	// ProductionRate is optional; omit it for instantaneous replenishment
	ProductionRate float64 `json:"production_rate,omitempty" example:"0"`
} // @name OptimizeRequest

// ToParameters maps the request onto the domain parameters.
func (r OptimizeRequest) ToParameters() model.CostParameters {
	return model.CostParameters{
		Demand:                r.Demand,
		ManufacturerSetupCost: r.ManufacturerSetupCost,
		SupplierSetupCost:     r.SupplierSetupCost,
		HoldingCost:           r.HoldingCost,
		DefectRate:            r.DefectRate,
		DefectPenalty:         r.DefectPenalty,
		ProductionRate:        r.ProductionRate,
	}
}

// PortfolioItemRequest is one named item of a portfolio.
type PortfolioItemRequest struct {
	Name string `json:"name" example:"metal"`
	OptimizeRequest
} // @name PortfolioItemRequest

// PortfolioRequest is the body of POST /api/optimize/portfolio.
//
// @Description Items optimised independently and summed
type PortfolioRequest struct {
	// Demand, when present, is shared by every item and replaces item demands
	Demand *float64               `json:"demand,omitempty" example:"1000"`
	Items  []PortfolioItemRequest `json:"items"`
} // @name PortfolioRequest

// ToItems maps the request onto domain portfolio items.
func (r PortfolioRequest) ToItems() []model.PortfolioItem {
	items := make([]model.PortfolioItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = model.PortfolioItem{Name: it.Name, Parameters: it.ToParameters()}
		if r.Demand != nil {
			items[i].Parameters.Demand = *r.Demand
		}
	}
	return items
}

// HistoryQuery is the query string of GET /api/history.
type HistoryQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Kind  string `form:"kind" binding:"omitempty,oneof=single portfolio"`
}

// ToOptions maps the query onto repository options.
func (q HistoryQuery) ToOptions() model.HistoryQueryOptions {
	return model.HistoryQueryOptions{Kind: q.Kind, Limit: q.Limit}
}
