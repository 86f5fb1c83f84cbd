package repository

import (
	"time"

	"github.com/guttosm/epq-service/internal/domain/model"
)

func historyRecord(kind, label string, ts time.Time, demand float64) *model.HistoryRecord {
	return &model.HistoryRecord{
		Timestamp: ts,
		Kind:      kind,
		Label:     label,
		Parameters: model.CostParameters{
			Demand:                demand,
			ManufacturerSetupCost: 50,
			HoldingCost:           2,
			DefectRate:            0.02,
			DefectPenalty:         5,
			ProductionRate:        5000,
		},
		OptimalLotSize: 223.6068,
		TotalCost:      447.2136,
		Convex:         true,
	}
}
