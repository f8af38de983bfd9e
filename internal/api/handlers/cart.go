package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/api/middleware"
	"github.com/mielhoja/bakeryapi/internal/cart"
	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/internal/repository"
	"github.com/mielhoja/bakeryapi/internal/service"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

// CartResponse represents the cart contents response
type CartResponse struct {
	Items []domain.LineItem `json:"items"`
}

// ValidateCartResponse distinguishes "cart unchanged" from "cart
// auto-corrected" so the caller can decide whether to notify the user
type ValidateCartResponse struct {
	Changed bool              `json:"changed"`
	Removed []string          `json:"removed,omitempty"`
	Items   []domain.LineItem `json:"items"`
}

// QuoteResponse carries the pricing summary for display. Validated is false
// when the availability snapshot could not be fetched and the unvalidated
// persisted cart was priced instead.
type QuoteResponse struct {
	domain.CartPricingSummary
	Validated bool `json:"validated"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		items, err := cartService.Get(c.Request.Context(), cartID)
		if err != nil {
			logger.Error("Failed to get cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{Items: items})
	}
}

// HandleAddItem handles POST /v1/cart/items
func HandleAddItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		var req service.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cartService := service.NewCartService(repos, logger)
		items, err := cartService.Add(c.Request.Context(), cartID, req)
		if err != nil {
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
				return
			}
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{Items: items})
	}
}

// HandleUpdateQuantity handles PATCH /v1/cart/items/:id
func HandleUpdateQuantity(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
			return
		}

		var req service.UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cartService := service.NewCartService(repos, logger)
		items, err := cartService.SetQuantity(c.Request.Context(), cartID, itemID, req.Quantity)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			logger.Error("Failed to update cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{Items: items})
	}
}

// HandleRemoveItem handles DELETE /v1/cart/items/:id
func HandleRemoveItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		items, err := cartService.Remove(c.Request.Context(), cartID, itemID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, CartResponse{Items: items})
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		if err := cartService.Clear(c.Request.Context(), cartID); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleValidateCart handles POST /v1/cart/validate
func HandleValidateCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		result, err := cartService.Validate(c.Request.Context(), cartID)
		if err != nil {
			if _, ok := err.(*errors.ErrAvailabilityUnavailable); ok {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability check unavailable"})
				return
			}
			logger.Error("Failed to validate cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		switch r := result.(type) {
		case cart.Adjusted:
			c.JSON(http.StatusOK, ValidateCartResponse{
				Changed: true,
				Removed: r.Removed,
				Items:   r.Cart,
			})
		default:
			c.JSON(http.StatusOK, ValidateCartResponse{
				Changed: false,
				Items:   result.Items(),
			})
		}
	}
}

// HandleQuote handles GET /v1/cart/quote
func HandleQuote(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		cartService := service.NewCartService(repos, logger)
		summary, validated, err := cartService.Quote(c.Request.Context(), cartID, time.Now())
		if err != nil {
			logger.Error("Failed to quote cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, QuoteResponse{
			CartPricingSummary: *summary,
			Validated:          validated,
		})
	}
}
