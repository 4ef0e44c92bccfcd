// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockdash/internal/core/role"
	"stockdash/internal/domain/audit"
	"stockdash/internal/domain/inventory"
	"stockdash/internal/infrastructure/http/v1/handlers"
	"stockdash/internal/infrastructure/http/v1/middleware"
	"stockdash/internal/infrastructure/upstream"
	"stockdash/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// RoleStore is the process-wide role flag
	RoleStore *role.Store

	// Inventory is the reconciler owning the snapshot
	Inventory *inventory.Service

	// Refresher drives fetch cycles (initial, manual, periodic)
	Refresher *upstream.Refresher

	// Health tracks the last fetch outcome for readiness
	Health *upstream.Health

	// Trail records mutations
	Trail *audit.Trail

	// Version string reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CallerRole(cfg.RoleStore))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Health, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	dashboardHandler := handlers.NewDashboardHandler(cfg.Inventory)
	roleHandler := handlers.NewRoleHandler(cfg.RoleStore, cfg.Trail)
	inventoryHandler := handlers.NewInventoryHandler(cfg.Inventory, cfg.Trail, cfg.Refresher)
	auditHandler := handlers.NewAuditHandler(cfg.Trail, cfg.Inventory)

	// API v1
	api := router.Group("/api/v1")
	{
		// Read-only surface, available to every role
		api.GET("/dashboard", dashboardHandler.View)
		api.GET("/stats", dashboardHandler.Stats)
		api.GET("/role", roleHandler.Current)
		api.POST("/role/toggle", roleHandler.Toggle)

		// Mutating surface - the role gate's call site
		admin := api.Group("")
		admin.Use(middleware.RequireMutator())
		{
			admin.POST("/refresh", inventoryHandler.Refresh)
			admin.POST("/items/:name/edit", inventoryHandler.BeginEdit)
			admin.PUT("/items/:name/edit", inventoryHandler.UpdateDraft)
			admin.POST("/items/:name/save", inventoryHandler.SaveEdit)
			admin.DELETE("/items/:name/edit", inventoryHandler.CancelEdit)
			admin.DELETE("/items/:name", inventoryHandler.Delete)
			admin.POST("/items/:name/hide", inventoryHandler.Hide)
			admin.GET("/audit", auditHandler.List)
			admin.GET("/export", auditHandler.Export)
		}
	}

	return router
}
