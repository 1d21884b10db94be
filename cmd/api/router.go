package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"funpark-backend/internal/shared/middleware"
	"funpark-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(c.Config.App.SiteURL))

	router.GET("/health", func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		if err := c.HealthCheck(checkCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.Config.App.Version,
		})
	})

	v1 := router.Group("/api/v1")
	{
		promo := v1.Group("/promo")
		{
			promo.POST("/validate", c.PromoHandler.Validate)
			promo.POST("/reserve", c.PromoHandler.Reserve)
			promo.POST("/cancel", c.PromoHandler.Cancel)
		}

		v1.GET("/services", c.CatalogHandler.ListServices)

		payments := v1.Group("/payments")
		{
			payments.POST("/purchase", c.CheckoutHandler.Purchase)
			payments.POST("/callback", c.CallbackHandler.HandleCallback)
		}

		// External schedulers may only know GET or POST; accept both.
		cron := v1.Group("/cron")
		{
			cron.GET("/cleanup", c.CleanupHandler.Cleanup)
			cron.POST("/cleanup", c.CleanupHandler.Cleanup)
		}
	}

	return router
}
