package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

// AddItemRequest represents an add-to-cart payload
type AddItemRequest struct {
	ProductID uuid.UUID           `json:"product_id" binding:"required"`
	Name      string              `json:"name" binding:"required"`
	UnitPrice decimal.Decimal     `json:"unit_price"`
	Quantity  int                 `json:"quantity" binding:"required,min=1"`
	Category  domain.Category     `json:"category" binding:"required"`
	Options   *domain.ItemOptions `json:"options,omitempty"`
	ImageURL  *string             `json:"image_url,omitempty"`
}

// UpdateQuantityRequest represents a quantity update payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest represents the order submission payload. ExpectedTotal is
// the total the client displayed; when present the trusted recomputation
// must match it exactly or the order is refused.
type CheckoutRequest struct {
	CustomerName  string           `json:"customer_name" binding:"required"`
	CustomerPhone string           `json:"customer_phone,omitempty"`
	ExpectedTotal *decimal.Decimal `json:"expected_total,omitempty"`
}

// CreatePromotionRequest represents the admin promotion creation payload
type CreatePromotionRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description,omitempty"`
	Kind         domain.DiscountKind `json:"kind" binding:"required"`
	Value        *decimal.Decimal    `json:"value,omitempty"`
	AppliesToAll bool                `json:"applies_to_all"`
	ProductIDs   []uuid.UUID         `json:"product_ids,omitempty"`
	FreeShipping bool                `json:"free_shipping"`
	Active       bool                `json:"active"`
	StartsAt     *time.Time          `json:"starts_at,omitempty"`
	EndsAt       *time.Time          `json:"ends_at,omitempty"`
}
