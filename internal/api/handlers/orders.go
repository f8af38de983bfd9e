package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/api/middleware"
	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/internal/repository"
	"github.com/mielhoja/bakeryapi/internal/service"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

// CheckoutResponse represents the order placement response with the
// authoritative totals computed on the trusted boundary
type CheckoutResponse struct {
	OrderID       string             `json:"order_id"`
	Status        domain.OrderStatus `json:"status"`
	Subtotal      string             `json:"subtotal"`
	DiscountTotal string             `json:"discount_total"`
	Total         string             `json:"total"`
	FreeShipping  bool               `json:"free_shipping"`
}

// OrderResponse represents the order detail response
type OrderResponse struct {
	ID            string              `json:"id"`
	Status        domain.OrderStatus  `json:"status"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Subtotal      string              `json:"subtotal"`
	DiscountTotal string              `json:"discount_total"`
	Total         string              `json:"total"`
	FreeShipping  bool                `json:"free_shipping"`
	PromotionIDs  []uuid.UUID         `json:"promotion_ids"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID           string     `json:"product_id"`
	Name                string     `json:"name"`
	UnitPrice           string     `json:"unit_price"`
	DiscountedUnitPrice string     `json:"discounted_unit_price"`
	Quantity            int        `json:"quantity"`
	LineTotal           string     `json:"line_total"`
	PromotionID         *uuid.UUID `json:"promotion_id,omitempty"`
}

// HandleCheckout handles POST /v1/orders
func HandleCheckout(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := middleware.CartID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-ID header"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, _, err := orderService.PlaceOrder(c.Request.Context(), cartID, req)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error()})
			case *errors.ErrCartConflict:
				c.JSON(http.StatusConflict, gin.H{
					"error":   "cart changed during checkout",
					"removed": e.Removed,
				})
			case *errors.ErrPricingMismatch:
				c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
			case *errors.ErrAvailabilityUnavailable:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability check unavailable"})
			default:
				logger.Error("Failed to place order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, CheckoutResponse{
			OrderID:       order.ID.String(),
			Status:        order.Status,
			Subtotal:      order.Subtotal.StringFixed(2),
			DiscountTotal: order.DiscountTotal.StringFixed(2),
			Total:         order.Total.StringFixed(2),
			FreeShipping:  order.FreeShipping,
		})
	}
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, items, err := orderService.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		itemResponses := make([]OrderItemResponse, len(items))
		for i, item := range items {
			itemResponses[i] = OrderItemResponse{
				ProductID:           item.ProductID.String(),
				Name:                item.Name,
				UnitPrice:           item.UnitPrice.StringFixed(2),
				DiscountedUnitPrice: item.DiscountedUnitPrice.StringFixed(2),
				Quantity:            item.Quantity,
				LineTotal:           item.LineTotal.StringFixed(2),
				PromotionID:         item.PromotionID,
			}
		}

		response := OrderResponse{
			ID:            order.ID.String(),
			Status:        order.Status,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			Subtotal:      order.Subtotal.StringFixed(2),
			DiscountTotal: order.DiscountTotal.StringFixed(2),
			Total:         order.Total.StringFixed(2),
			FreeShipping:  order.FreeShipping,
			PromotionIDs:  order.PromotionIDs,
			Items:         itemResponses,
			CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt:     order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}

		c.JSON(http.StatusOK, response)
	}
}
