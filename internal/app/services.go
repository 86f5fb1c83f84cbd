// Package app provides service initialization.
package app

import (
	"github.com/guttosm/epq-service/config"
	"github.com/guttosm/epq-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Optimizer *service.OptimizerService
	Demand    service.DemandEstimator
	History   service.HistoryService
}

// InitializeServices initializes business logic services. db may be nil,
// in which case history writes are skipped and reads report it disabled.
func InitializeServices(cfg config.CacheConfig, db *DatabaseComponents) *ServiceComponents {
	var opts []service.Option
	if cfg.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Size, cfg.TTL))
	}

	history := service.NewHistoryService(nil, config.HistoryBackendNone)
	if db != nil && db.HistoryRepo != nil {
		history = service.NewHistoryService(db.HistoryRepo, db.Backend)
	}

	return &ServiceComponents{
		Optimizer: service.NewOptimizerService(opts...),
		Demand:    service.NewCSVDemandEstimator(),
		History:   history,
	}
}
