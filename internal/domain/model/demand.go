package model

import "time"

// DemandEstimate summarises a daily sales history as an annual demand.
//
// @Description Annual demand estimated from daily sales
type DemandEstimate struct {
	Rows            int       `json:"rows" example:"730"`
	FirstDate       time.Time `json:"first_date,omitempty"`
	LastDate        time.Time `json:"last_date,omitempty"`
	DaysCovered     int       `json:"days_covered" example:"365"`
	MeanDailyDemand float64   `json:"mean_daily_demand" example:"2.74"`
	AnnualDemand    float64   `json:"annual_demand" example:"1000"`
} // @name DemandEstimate

// Scenario is a named portfolio loaded from a scenario file.
type Scenario struct {
	Label string          `yaml:"label"`
	Items []PortfolioItem `yaml:"items"`
}
