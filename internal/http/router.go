package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/epq-service/internal/i18n"
	"github.com/guttosm/epq-service/internal/metrics"
	"github.com/guttosm/epq-service/internal/middleware"
)

// RouterConfig holds router configuration options. Nil limiter, idempotency
// and logger disable those features; their owner stops them on shutdown.
type RouterConfig struct {
	RateLimiter    *middleware.RateLimiter
	Idempotency    *middleware.Idempotency
	AsyncLogger    *middleware.AsyncLogger
	Auth           middleware.AuthConfig
	CORSOrigins    []string
	RequestTimeout time.Duration
	SwaggerUser    string
	SwaggerPass    string
}

// NewRouter creates and configures the Gin router for the EPQ service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AsyncLogger),
		middleware.ErrorHandler(DomainErrorMapper),
	)

	registerInfrastructureRoutes(router, healthHandler, cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, cfg)
	registerAPIRoutes(api, handler)

	router.NoRoute(func(c *gin.Context) {
		NewResponseBuilder(c).Error(stdhttp.StatusNotFound, i18n.ErrKeyNotFound, nil)
	})

	return router
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		return
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// configureAPIMiddleware authenticates before rate limiting so limits
// apply per caller rather than per IP.
func configureAPIMiddleware(api *gin.RouterGroup, cfg RouterConfig) {
	api.Use(middleware.Timeout(cfg.RequestTimeout))
	api.Use(middleware.Authenticate(cfg.Auth))
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.RateLimit())
	}
	if cfg.Idempotency != nil {
		api.Use(cfg.Idempotency.Handler())
	}
}
