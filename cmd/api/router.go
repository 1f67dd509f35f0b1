package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"articles-backend/internal/shared/middleware"
	"articles-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupOwnerRoutes(v1, c)
		setupItemRoutes(v1, c)
	}

	return router
}

// ========================================
// OWNER ROUTES
// ========================================
func setupOwnerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	owners := v1.Group("/owners")
	{
		owners.POST("", c.OwnerHandler.Create)
		owners.GET("", c.OwnerHandler.List)
		owners.GET("/:id", c.OwnerHandler.GetWithItems)
		owners.PUT("/:id", c.OwnerHandler.Update)
		owners.DELETE("/:id", c.OwnerHandler.Delete)
		owners.POST("/:id/token", c.OwnerHandler.IssueToken)
	}
}

// ========================================
// ITEM ROUTES
// ========================================
// Mutating an existing item requires a token proving the caller is the
// item's owner; creation and reads are open.
func setupItemRoutes(v1 *gin.RouterGroup, c *container.Container) {
	items := v1.Group("/items")
	{
		items.POST("", c.ItemHandler.Create)
		items.GET("", c.ItemHandler.List)
		items.GET("/:id", c.ItemHandler.GetByID)
		items.PUT("/:id", middleware.Auth(c.JWTManager), c.ItemHandler.Update)
		items.DELETE("/:id", middleware.Auth(c.JWTManager), c.ItemHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "UP"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "DOWN"
		}

		cacheStatus := "UP"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "DOWN"
		}

		status := http.StatusOK
		if dbStatus == "DOWN" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":    dbStatus,
			"cache":     cacheStatus,
			"service":   c.Config.App.Name,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
