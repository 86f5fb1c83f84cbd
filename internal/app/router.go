// Package app provides router configuration.
package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/config"
	"github.com/guttosm/epq-service/internal/http"
	"github.com/guttosm/epq-service/internal/middleware"
)

// ErrNoCredentials is returned when auth is enabled without keys or a JWT secret.
var ErrNoCredentials = errors.New("AUTH_ENABLED is set but neither API_KEYS, API_KEY_HASHES nor JWT_SECRET_KEY is configured")

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the HTTP handlers and the middleware they run behind.
// al may be nil when no log store is configured.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, al *middleware.AsyncLogger, cfg config.Config) (*RouterComponents, error) {
	auth, err := authConfig(cfg.Auth)
	if err != nil {
		return nil, err
	}

	handler := http.NewHandler(
		services.Optimizer,
		http.WithHistory(services.History),
		http.WithDemandEstimator(services.Demand),
		http.WithAuditLogger(al),
		http.WithHistoryTimeout(cfg.Database.HistoryTimeout),
	)

	healthHandler := http.NewHealthHandler()
	if db != nil {
		healthHandler.RegisterChecker(db.Backend, db)
		healthHandler.RegisterCircuitBreaker(db.Backend+"_history", db.HistoryCircuitBreaker)
		healthHandler.RegisterCircuitBreaker(db.Backend+"_logs", db.LogsCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		AsyncLogger:    al,
		Auth:           auth,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
	}
	if cfg.Server.RateLimit > 0 && cfg.Server.RateWindow > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}
	if cfg.Server.EnableIdempotency {
		routerCfg.Idempotency = middleware.NewIdempotency(cfg.Server.IdempotencyTTL)
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}, nil
}

func authConfig(cfg config.AuthConfig) (middleware.AuthConfig, error) {
	if !cfg.Enabled {
		return middleware.AuthConfig{}, nil
	}
	auth := middleware.AuthConfig{
		APIKeys: middleware.NewAPIKeys(cfg.APIKeys, cfg.APIKeyHashes),
	}
	if cfg.JWTSecretKey != "" {
		auth.JWTSecret = []byte(cfg.JWTSecretKey)
	}
	if !auth.Enabled() {
		return middleware.AuthConfig{}, ErrNoCredentials
	}
	log.Info().
		Bool("api_keys", !auth.APIKeys.Empty()).
		Bool("bearer_tokens", len(auth.JWTSecret) > 0).
		Msg("Authentication enabled")
	return auth, nil
}
