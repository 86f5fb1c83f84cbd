// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/config"
	"github.com/guttosm/epq-service/internal/circuitbreaker"
	"github.com/guttosm/epq-service/internal/repository"
	"github.com/guttosm/epq-service/internal/service"
)

// DatabaseComponents holds the storage behind history and audit logs.
type DatabaseComponents struct {
	Backend               string
	HistoryRepo           repository.HistoryRepositoryInterface
	LoggingService        service.LoggingService
	HistoryCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker

	mongo  *repository.MongoDB
	sqlite *repository.SQLiteHistoryRepository
}

// InitializeDatabase connects the configured history backend. It returns nil
// when history is disabled or the backend cannot be reached; the service then
// runs without history.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	switch cfg.HistoryBackend {
	case config.HistoryBackendMongo:
		return initializeMongo(cfg)
	case config.HistoryBackendSQLite:
		return initializeSQLite(cfg)
	}
	log.Info().Msg("History backend disabled")
	return nil
}

func initializeMongo(cfg config.DatabaseConfig) *DatabaseComponents {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without history")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if ttlDays > 0 {
		if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
		}
	}

	historyCB := newCircuitBreaker(cfg, "mongodb-history")
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	historyRepo := repository.NewHistoryRepositoryWithCircuitBreaker(repository.NewHistoryRepository(db), historyCB)

	return &DatabaseComponents{
		Backend:               config.HistoryBackendMongo,
		HistoryRepo:           historyRepo,
		LoggingService:        service.NewLoggingService(logsRepo),
		HistoryCircuitBreaker: historyCB,
		LogsCircuitBreaker:    logsCB,
		mongo:                 db,
	}
}

func initializeSQLite(cfg config.DatabaseConfig) *DatabaseComponents {
	repo, err := repository.NewSQLiteHistoryRepository(cfg.SQLitePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to open SQLite history - continuing without history")
		return nil
	}

	log.Info().Str("path", cfg.SQLitePath).Msg("Opened SQLite history")

	historyCB := newCircuitBreaker(cfg, "sqlite-history")
	return &DatabaseComponents{
		Backend:               config.HistoryBackendSQLite,
		HistoryRepo:           repository.NewHistoryRepositoryWithCircuitBreaker(repo, historyCB),
		HistoryCircuitBreaker: historyCB,
		sqlite:                repo,
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	def := circuitbreaker.DefaultConfig()
	cbCfg := circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	}
	if cbCfg.FailureThreshold <= 0 {
		cbCfg.FailureThreshold = def.FailureThreshold
	}
	if cbCfg.SuccessThreshold <= 0 {
		cbCfg.SuccessThreshold = def.SuccessThreshold
	}
	if cbCfg.Timeout <= 0 {
		cbCfg.Timeout = def.Timeout
	}
	return circuitbreaker.New(cbCfg)
}

// HealthCheck pings the underlying store.
func (d *DatabaseComponents) HealthCheck(ctx context.Context) error {
	switch {
	case d.mongo != nil:
		return d.mongo.HealthCheck(ctx)
	case d.sqlite != nil:
		return d.sqlite.HealthCheck(ctx)
	}
	return nil
}

// Close releases the database connections.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.mongo != nil {
		errs = append(errs, d.mongo.Close(ctx))
	}
	if d.sqlite != nil {
		errs = append(errs, d.sqlite.Close())
	}
	return errors.Join(errs...)
}
