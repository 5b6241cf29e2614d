package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/internal/middleware"
)

func (h Handlers) register(api *gin.RouterGroup, idempotent gin.HandlerFunc) {
	read := middleware.RequireScope(middleware.ScopeReadHistory)

	if h.Plan != nil {
		api.POST("/plan", middleware.RequireScope(middleware.ScopePlan), idempotent, h.Plan.Plan)
	}
	if h.History != nil {
		api.GET("/plans", read, h.History.ListRuns)
	}
	if h.Catalogs != nil {
		catalogs := api.Group("/catalogs")
		catalogs.GET("/active", read, h.Catalogs.GetActive)
		catalogs.GET("/history", read, h.Catalogs.History)
		catalogs.PUT("", middleware.RequireScope(middleware.ScopeManageCatalogs), idempotent, h.Catalogs.Store)
	}
}
