package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/internal/repository"
	"github.com/mielhoja/bakeryapi/internal/service"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

// PromotionResponse represents a promotion rule in admin responses
type PromotionResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Kind         domain.DiscountKind `json:"kind"`
	Value        *string             `json:"value,omitempty"`
	AppliesToAll bool                `json:"applies_to_all"`
	ProductIDs   []uuid.UUID         `json:"product_ids,omitempty"`
	FreeShipping bool                `json:"free_shipping"`
	Active       bool                `json:"active"`
	StartsAt     *string             `json:"starts_at,omitempty"`
	EndsAt       *string             `json:"ends_at,omitempty"`
}

func promotionResponse(rule *domain.PromotionRule) PromotionResponse {
	resp := PromotionResponse{
		ID:           rule.ID.String(),
		Title:        rule.Title,
		Description:  rule.Description,
		Kind:         rule.Kind,
		AppliesToAll: rule.AppliesToAll,
		ProductIDs:   rule.ProductIDs,
		FreeShipping: rule.FreeShipping,
		Active:       rule.Active,
	}
	if rule.Value != nil {
		v := rule.Value.String()
		resp.Value = &v
	}
	if rule.StartsAt != nil {
		t := rule.StartsAt.Format("2006-01-02T15:04:05Z07:00")
		resp.StartsAt = &t
	}
	if rule.EndsAt != nil {
		t := rule.EndsAt.Format("2006-01-02T15:04:05Z07:00")
		resp.EndsAt = &t
	}
	return resp
}

// HandleListPromotions handles GET /v1/admin/promotions
func HandleListPromotions(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rules, err := repos.Promotions.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list promotions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]PromotionResponse, len(rules))
		for i := range rules {
			responses[i] = promotionResponse(&rules[i])
		}

		c.JSON(http.StatusOK, gin.H{"promotions": responses})
	}
}

// HandleCreatePromotion handles POST /v1/admin/promotions
func HandleCreatePromotion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreatePromotionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		rule := &domain.PromotionRule{
			Title:        req.Title,
			Description:  req.Description,
			Kind:         req.Kind,
			Value:        req.Value,
			AppliesToAll: req.AppliesToAll,
			ProductIDs:   req.ProductIDs,
			FreeShipping: req.FreeShipping,
			Active:       req.Active,
			StartsAt:     req.StartsAt,
			EndsAt:       req.EndsAt,
		}

		if err := repos.Promotions.Create(c.Request.Context(), rule); err != nil {
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
				return
			}
			logger.Error("Failed to create promotion", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, promotionResponse(rule))
	}
}

// HandleDeactivatePromotion handles POST /v1/admin/promotions/:id/deactivate
func HandleDeactivatePromotion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		promoID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promotion ID"})
			return
		}

		if err := repos.Promotions.Deactivate(c.Request.Context(), promoID); err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "promotion not found"})
				return
			}
			logger.Error("Failed to deactivate promotion", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleConfirmOrder handles POST /v1/admin/orders/:id/confirm
func HandleConfirmOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.ConfirmOrder(c.Request.Context(), orderID); err != nil {
			respondOrderTransitionError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": domain.OrderStatusConfirmed})
	}
}

// HandleCancelOrder handles POST /v1/admin/orders/:id/cancel
func HandleCancelOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.CancelOrder(c.Request.Context(), orderID); err != nil {
			respondOrderTransitionError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": domain.OrderStatusCancelled})
	}
}

func respondOrderTransitionError(c *gin.Context, logger *zap.Logger, err error) {
	switch err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to update order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
