package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/api/handlers"
	"github.com/mielhoja/bakeryapi/internal/api/middleware"
	"github.com/mielhoja/bakeryapi/internal/config"
	"github.com/mielhoja/bakeryapi/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Storefront cart routes (cart identity via X-Cart-ID header)
		v1.GET("/cart", handlers.HandleGetCart(repos, logger))
		v1.POST("/cart/items", handlers.HandleAddItem(repos, logger))
		v1.PATCH("/cart/items/:id", handlers.HandleUpdateQuantity(repos, logger))
		v1.DELETE("/cart/items/:id", handlers.HandleRemoveItem(repos, logger))
		v1.DELETE("/cart", handlers.HandleClearCart(repos, logger))
		v1.POST("/cart/validate", handlers.HandleValidateCart(repos, logger))
		v1.GET("/cart/quote", handlers.HandleQuote(repos, logger))

		// Order routes
		v1.POST("/orders", handlers.HandleCheckout(repos, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuth(cfg, logger))
		{
			adminRoutes.GET("/promotions", handlers.HandleListPromotions(repos, logger))
			adminRoutes.POST("/promotions", handlers.HandleCreatePromotion(repos, logger))
			adminRoutes.POST("/promotions/:id/deactivate", handlers.HandleDeactivatePromotion(repos, logger))
			adminRoutes.POST("/orders/:id/confirm", handlers.HandleConfirmOrder(repos, logger))
			adminRoutes.POST("/orders/:id/cancel", handlers.HandleCancelOrder(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
