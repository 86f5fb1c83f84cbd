package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/epq-service/internal/middleware"
)

// registerAPIRoutes registers the business routes under /api.
func registerAPIRoutes(api *gin.RouterGroup, handler *Handler) {
	if handler == nil {
		return
	}

	optimize := api.Group("", middleware.RequireScope(middleware.ScopeOptimize))
	optimize.POST("/optimize", handler.Optimize)
	optimize.POST("/optimize/portfolio", handler.OptimizePortfolio)
	optimize.POST("/demand/estimate", handler.EstimateDemand)

	api.GET("/history", middleware.RequireScope(middleware.ScopeHistoryRead), handler.ListHistory)
}
