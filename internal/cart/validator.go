// Package cart holds the availability validation of persisted carts against
// the current catalog snapshot.
package cart

import (
	"github.com/mielhoja/bakeryapi/internal/domain"
)

// Result is the outcome of validating a cart against an availability
// snapshot. It is a two-armed union: Unchanged means the cart survived as-is
// and no user notification is needed; Adjusted carries the filtered cart and
// the display names of the dropped items.
type Result interface {
	Items() []domain.LineItem
	isResult()
}

// Unchanged signals the cart passed validation without modification
type Unchanged struct {
	Cart []domain.LineItem
}

func (u Unchanged) Items() []domain.LineItem { return u.Cart }
func (Unchanged) isResult()                  {}

// Adjusted signals items were dropped; callers should surface Removed to the
// user and persist Cart in place of the stored sequence.
type Adjusted struct {
	Cart    []domain.LineItem
	Removed []string
}

func (a Adjusted) Items() []domain.LineItem { return a.Cart }
func (Adjusted) isResult()                  {}

// Validate reconciles a persisted cart against the availability snapshot.
//
// The first item encountered fixes the cart's family (seasonal pre-order vs
// same-day); items of the other family are invalid. Seasonal pre-orders skip
// the daily-rotation check. Composable boxes additionally require every
// selected flavor to exist in the catalog.
func Validate(items []domain.LineItem, snap *domain.AvailabilitySnapshot) Result {
	valid := make([]domain.LineItem, 0, len(items))
	var removed []string

	familySet := false
	var seasonalCart bool

	for _, item := range items {
		if !familySet {
			familySet = true
			seasonalCart = item.Category.IsSeasonal()
		} else if item.Category.IsSeasonal() != seasonalCart {
			removed = append(removed, item.Name)
			continue
		}

		if !itemAvailable(&item, snap) {
			removed = append(removed, item.Name)
			continue
		}

		valid = append(valid, item)
	}

	if len(removed) == 0 {
		return Unchanged{Cart: valid}
	}
	return Adjusted{Cart: valid, Removed: removed}
}

func itemAvailable(item *domain.LineItem, snap *domain.AvailabilitySnapshot) bool {
	if !snap.Has(item.ProductID) {
		return false
	}
	if snap.TodayKnown && !item.Category.IsSeasonal() && !snap.HasToday(item.ProductID) {
		return false
	}
	if item.Category.IsComposable() && item.Options != nil {
		for _, flavorID := range item.Options.FlavorIDs {
			if !snap.Has(flavorID) {
				return false
			}
		}
	}
	return true
}
