package domain

// DiscountKind represents the kind of discount a promotion rule grants
type DiscountKind string

const (
	DiscountPercentage   DiscountKind = "percentage"
	DiscountFixed        DiscountKind = "fixed"
	DiscountFreeShipping DiscountKind = "free_shipping"
)

// IsValid checks if the discount kind is valid
func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountPercentage, DiscountFixed, DiscountFreeShipping:
		return true
	default:
		return false
	}
}

// Category classifies a product within the bakery catalog
type Category string

const (
	CategoryCake        Category = "cake"
	CategoryBread       Category = "bread"
	CategoryCookie      Category = "cookie"
	CategoryPastry      Category = "pastry"
	CategoryAssortedBox Category = "assorted_box"
	CategoryHolidayTray Category = "holiday_tray"
	CategorySeasonalBox Category = "seasonal_box"
)

// IsSeasonal reports whether the category belongs to the seasonal pre-order
// family. Seasonal items are sold for a fixed future date, bypass the
// daily-rotation availability check, and cannot share a checkout with
// same-day items.
func (c Category) IsSeasonal() bool {
	switch c {
	case CategoryHolidayTray, CategorySeasonalBox:
		return true
	default:
		return false
	}
}

// IsComposable reports whether items of this category carry flavor
// sub-selections that must each exist in the catalog.
func (c Category) IsComposable() bool {
	return c == CategoryAssortedBox
}

// OrderStatus represents the status of a placed order
type OrderStatus string

const (
	OrderStatusPendingConfirmation OrderStatus = "PENDING_CONFIRMATION"
	OrderStatusConfirmed           OrderStatus = "CONFIRMED"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingConfirmation,
		OrderStatusConfirmed,
		OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPendingConfirmation:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusCancelled
	case OrderStatusConfirmed:
		return newStatus == OrderStatusCompleted ||
			newStatus == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
