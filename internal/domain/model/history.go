package model

import "time"

// Kinds of history record.
const (
	HistoryKindSingle    = "single"
	HistoryKindPortfolio = "portfolio"
)

// HistoryRecord is one append-only optimisation history row.
//
// @Description Persisted optimisation run
type HistoryRecord struct {
	ID             string         `json:"id" example:"65b7f0c2e4b0a1a2b3c4d5e6"`
	Timestamp      time.Time      `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	Kind           string         `json:"kind" example:"single"`
	Label          string         `json:"label,omitempty" example:"metal"`
	RequestID      string         `json:"request_id,omitempty"`
	Parameters     CostParameters `json:"parameters"`
	OptimalLotSize float64        `json:"optimal_lot_size" example:"223.6068"`
	TotalCost      float64        `json:"total_cost" example:"447.2136"`
	Convex         bool           `json:"convex" example:"true"`
} // @name HistoryRecord

// NewHistoryRecord builds a record from a successful optimisation.
func NewHistoryRecord(kind, label, requestID string, params CostParameters, result OptimizationResult) *HistoryRecord {
	return &HistoryRecord{
		Timestamp:      time.Now().UTC(),
		Kind:           kind,
		Label:          label,
		RequestID:      requestID,
		Parameters:     params,
		OptimalLotSize: result.OptimalLotSize,
		TotalCost:      result.TotalCost,
		Convex:         result.Convex,
	}
}

// HistoryQueryOptions filters history listings.
type HistoryQueryOptions struct {
	Kind  string
	Limit int
}
