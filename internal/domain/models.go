package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mielhoja/bakeryapi/pkg/errors"
)

// Product is a catalog entry as seen by the pricing engine
type Product struct {
	ID             uuid.UUID
	Name           string
	Category       Category
	BasePrice      decimal.Decimal
	Available      bool
	AvailableToday bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ItemOptions are the structured options carried by a cart line item.
// Two line items with the same product and equal options merge on add.
type ItemOptions struct {
	BoxSize   int         `json:"box_size,omitempty"`
	FlavorIDs []uuid.UUID `json:"flavor_ids,omitempty"`
	DoughType string      `json:"dough_type,omitempty"`
}

// LineItem represents one entry in a cart
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Category  Category        `json:"category"`
	Options   *ItemOptions    `json:"options,omitempty"`
	ImageURL  *string         `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// Validate checks the line item invariants
func (li *LineItem) Validate() error {
	if li.ProductID == uuid.Nil {
		return &errors.ErrValidation{Field: "product_id", Message: "is required"}
	}
	if li.Quantity < 1 {
		return &errors.ErrValidation{Field: "quantity", Message: "must be at least 1"}
	}
	if li.UnitPrice.IsNegative() {
		return &errors.ErrValidation{Field: "unit_price", Message: "must not be negative"}
	}
	return nil
}

// PromotionRule is an admin-defined discount or shipping-waiver policy.
// The engine only reads immutable snapshots of these.
type PromotionRule struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Kind         DiscountKind
	Value        *decimal.Decimal // nil for free_shipping rules
	AppliesToAll bool
	ProductIDs   []uuid.UUID // explicit association set when not AppliesToAll
	FreeShipping bool        // may be set on percentage/fixed rules too
	Active       bool
	StartsAt     *time.Time
	EndsAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppliesTo reports whether the rule applies to the given product
func (r *PromotionRule) AppliesTo(productID uuid.UUID) bool {
	if r.AppliesToAll {
		return true
	}
	for _, id := range r.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// GrantsFreeShipping reports whether the rule carries a shipping waiver,
// either via the dedicated kind or the independent side-flag
func (r *PromotionRule) GrantsFreeShipping() bool {
	return r.FreeShipping || r.Kind == DiscountFreeShipping
}

// Validate checks the promotion rule invariants
func (r *PromotionRule) Validate() error {
	if !r.Kind.IsValid() {
		return &errors.ErrValidation{Field: "kind", Message: "unknown discount kind"}
	}
	if r.Kind == DiscountFreeShipping {
		return nil // value is ignored
	}
	if r.Value == nil {
		return &errors.ErrValidation{Field: "value", Message: "is required for " + string(r.Kind) + " rules"}
	}
	if !r.Value.IsPositive() {
		return &errors.ErrValidation{Field: "value", Message: "must be positive"}
	}
	if r.Kind == DiscountPercentage && r.Value.GreaterThan(decimal.NewFromInt(100)) {
		return &errors.ErrValidation{Field: "value", Message: "percentage must not exceed 100"}
	}
	return nil
}

// AppliedPromotion records which rule won on a priced line item
type AppliedPromotion struct {
	RuleID       uuid.UUID        `json:"rule_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Kind         DiscountKind     `json:"kind"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	FreeShipping bool             `json:"free_shipping"`
}

// PricedLineItem is a line item with its discount evaluation attached
type PricedLineItem struct {
	LineItem
	DiscountedUnitPrice decimal.Decimal   `json:"discounted_unit_price"`
	LineTotal           decimal.Decimal   `json:"line_total"`
	DiscountTotal       decimal.Decimal   `json:"discount_total"`
	Applied             *AppliedPromotion `json:"applied_promotion,omitempty"`
	FreeShipping        bool              `json:"free_shipping"`
}

// CartPricingSummary is the cart-level pricing result. It is a value object
// recomputed on demand; totals are rounded per line, so subtotal minus
// discount total may drift from total by up to a cent per line.
type CartPricingSummary struct {
	Items               []PricedLineItem `json:"items"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	DiscountTotal       decimal.Decimal  `json:"discount_total"`
	Total               decimal.Decimal  `json:"total"`
	FreeShipping        bool             `json:"free_shipping"`
	AppliedPromotionIDs []uuid.UUID      `json:"applied_promotion_ids"`
}

// AvailabilitySnapshot is the external point-in-time truth about which
// products are sellable at all, and which are in the "today" rotation
type AvailabilitySnapshot struct {
	Available      map[uuid.UUID]struct{}
	AvailableToday map[uuid.UUID]struct{}
	// TodayKnown is false when no daily rotation was supplied, in which
	// case the daily check is skipped for all items.
	TodayKnown bool
	FetchedAt  time.Time
}

// Has reports whether the product is sellable at all
func (s *AvailabilitySnapshot) Has(productID uuid.UUID) bool {
	_, ok := s.Available[productID]
	return ok
}

// HasToday reports whether the product is in today's rotation
func (s *AvailabilitySnapshot) HasToday(productID uuid.UUID) bool {
	_, ok := s.AvailableToday[productID]
	return ok
}

// Order is the persisted record produced by the trusted order boundary
type Order struct {
	ID            uuid.UUID
	CartID        string
	Status        OrderStatus
	CustomerName  string
	CustomerPhone string
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
	FreeShipping  bool
	PromotionIDs  []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is one line of a persisted order, priced with server-trusted data
type OrderItem struct {
	ID                  uuid.UUID
	OrderID             uuid.UUID
	ProductID           uuid.UUID
	Name                string
	UnitPrice           decimal.Decimal
	DiscountedUnitPrice decimal.Decimal
	Quantity            int
	LineTotal           decimal.Decimal
	PromotionID         *uuid.UUID
	CreatedAt           time.Time
}
