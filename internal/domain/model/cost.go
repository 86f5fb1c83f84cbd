// Package model defines the core domain entities for the EPQ optimizer service.
package model

import (
	"math"
	"strconv"
	"strings"
)

// CostParameters are the inputs of the EPQ total cost model.
//
// @Description Cost inputs for the economic production quantity model
// @Example {"demand": 1000, "manufacturer_setup_cost": 50, "holding_cost": 2}
type CostParameters struct {
	// Demand is the annual demand D in units per year
	Demand float64 `json:"demand" yaml:"demand" bson:"demand" example:"1000"`
	// ManufacturerSetupCost is the manufacturer setup cost Sm per batch
	ManufacturerSetupCost float64 `json:"manufacturer_setup_cost" yaml:"manufacturer_setup_cost" bson:"manufacturer_setup_cost" example:"50"`
	// SupplierSetupCost is the supplier setup cost Sv per batch, 0 for a single-party setup
	SupplierSetupCost float64 `json:"supplier_setup_cost" yaml:"supplier_setup_cost" bson:"supplier_setup_cost" example:"0"`
	// HoldingCost is the holding cost h per unit per year
	HoldingCost float64 `json:"holding_cost" yaml:"holding_cost" bson:"holding_cost" example:"2"`
	// DefectRate is the fraction α of defective units, in [0, 1)
	DefectRate float64 `json:"defect_rate" yaml:"defect_rate" bson:"defect_rate" example:"0.05"`
	// DefectPenalty is the cost p charged per defective unit
	DefectPenalty float64 `json:"defect_penalty,omitempty" yaml:"defect_penalty,omitempty" bson:"defect_penalty" example:"0"`
	// ProductionRate is the production rate P in units per year, 0 for instantaneous replenishment
	ProductionRate float64 `json:"production_rate,omitempty" yaml:"production_rate,omitempty" bson:"production_rate" example:"0"`
}

// Validate checks every field against its domain and returns an
// *InvalidInputError naming the first offending field.
func (p CostParameters) Validate() error {
	fields := []struct {
		name  string
		value float64
		check func(float64) string
	}{
		{"demand", p.Demand, positive},
		{"manufacturer_setup_cost", p.ManufacturerSetupCost, positive},
		{"supplier_setup_cost", p.SupplierSetupCost, nonNegative},
		{"holding_cost", p.HoldingCost, positive},
		{"defect_rate", p.DefectRate, fraction},
		{"defect_penalty", p.DefectPenalty, nonNegative},
		{"production_rate", p.ProductionRate, p.productionRate},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidInputError{Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
		if reason := f.check(f.value); reason != "" {
			return &InvalidInputError{Field: f.name, Value: f.value, Reason: reason}
		}
	}
	return nil
}

// HasProductionRate reports whether a finite production rate is configured.
func (p CostParameters) HasProductionRate() bool { return p.ProductionRate > 0 }

// Fingerprint returns a canonical key for identical parameter sets.
func (p CostParameters) Fingerprint() string {
	values := []float64{
		p.Demand, p.ManufacturerSetupCost, p.SupplierSetupCost, p.HoldingCost,
		p.DefectRate, p.DefectPenalty, p.ProductionRate,
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, "|")
}

// Fields returns the parameters keyed by their JSON names, for structured logs.
func (p CostParameters) Fields() map[string]interface{} {
	return map[string]interface{}{
		"demand":                  p.Demand,
		"manufacturer_setup_cost": p.ManufacturerSetupCost,
		"supplier_setup_cost":     p.SupplierSetupCost,
		"holding_cost":            p.HoldingCost,
		"defect_rate":             p.DefectRate,
		"defect_penalty":          p.DefectPenalty,
		"production_rate":         p.ProductionRate,
	}
}

func (p CostParameters) productionRate(v float64) string {
	switch {
	case v < 0:
		return "must not be negative"
	case v > 0 && v <= p.Demand:
		return "must exceed demand"
	}
	return ""
}

func positive(v float64) string {
	if v <= 0 {
		return "must be greater than zero"
	}
	return ""
}

func nonNegative(v float64) string {
	if v < 0 {
		return "must not be negative"
	}
	return ""
}

func fraction(v float64) string {
	if v < 0 || v >= 1 {
		return "must be in [0, 1)"
	}
	return ""
}
