// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/config"
	"github.com/guttosm/epq-service/internal/http"
	"github.com/guttosm/epq-service/internal/middleware"
	"github.com/guttosm/epq-service/internal/scheduler"
)

// App holds the wired application and everything that must be stopped on shutdown.
type App struct {
	Router    *gin.Engine
	Services  *ServiceComponents
	Database  *DatabaseComponents
	Scheduler *scheduler.Scheduler

	asyncLogger *middleware.AsyncLogger
	routerCfg   http.RouterConfig
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg.Cache, db)

	var al *middleware.AsyncLogger
	if db != nil && db.LoggingService != nil {
		al = middleware.NewAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents, err := InitializeRouter(services, db, al, cfg)
	if err != nil {
		al.Stop()
		services.Optimizer.Close()
		_ = db.Close(context.Background())
		return nil, err
	}

	a := &App{
		Router:      http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services:    services,
		Database:    db,
		asyncLogger: al,
		routerCfg:   routerComponents.Config,
	}

	if cfg.Schedule.Enabled() {
		opts := []scheduler.Option{scheduler.WithDemandEstimator(services.Demand)}
		if al != nil {
			opts = append(opts, scheduler.WithAuditLogger(al))
		}
		a.Scheduler, err = scheduler.New(services.Optimizer, services.History, scheduler.Config{
			Cron:         cfg.Schedule.Cron,
			ScenarioPath: cfg.Schedule.Scenario,
			DemandCSV:    cfg.Schedule.DemandCSV,
		}, opts...)
		if err != nil {
			_ = a.Close(context.Background())
			return nil, fmt.Errorf("initialize scheduler: %w", err)
		}
	}

	return a, nil
}

// Start launches background jobs.
func (a *App) Start() {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}
}

// Close stops background work and releases connections. Pending audit
// entries are flushed before the database is closed.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Scheduler != nil {
		errs = append(errs, a.Scheduler.Stop(ctx))
	}
	if a.routerCfg.RateLimiter != nil {
		a.routerCfg.RateLimiter.Stop()
	}
	if a.routerCfg.Idempotency != nil {
		a.routerCfg.Idempotency.Stop()
	}
	a.asyncLogger.Stop()
	if a.Services != nil {
		a.Services.Optimizer.Close()
	}
	errs = append(errs, a.Database.Close(ctx))

	err := errors.Join(errs...)
	if err == nil {
		log.Info().Msg("Application resources released")
	}
	return err
}
