package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

// PriceCart evaluates every line item against the rule snapshot and produces
// the cart-level pricing summary. Pure function, no I/O.
//
// Rounding happens per line, never on the aggregate, so subtotal minus
// discount total may drift from total by up to a cent per line.
func PriceCart(items []domain.LineItem, rules []domain.PromotionRule) domain.CartPricingSummary {
	summary := domain.CartPricingSummary{
		Items:               make([]domain.PricedLineItem, 0, len(items)),
		Subtotal:            decimal.Zero,
		DiscountTotal:       decimal.Zero,
		Total:               decimal.Zero,
		AppliedPromotionIDs: []uuid.UUID{},
	}

	seenPromos := make(map[uuid.UUID]struct{})
	productIDs := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		qty := decimal.NewFromInt(int64(item.Quantity))

		result := BestDiscount(item.ProductID, item.UnitPrice, item.Quantity, rules)
		priced := domain.PricedLineItem{
			LineItem:            item,
			DiscountedUnitPrice: result.DiscountedUnitPrice,
			LineTotal:           result.DiscountedUnitPrice.Mul(qty).Round(2),
			DiscountTotal:       result.DiscountTotal,
			Applied:             result.Applied,
			FreeShipping:        result.FreeShipping,
		}
		summary.Items = append(summary.Items, priced)

		summary.Subtotal = summary.Subtotal.Add(item.UnitPrice.Mul(qty).Round(2))
		summary.DiscountTotal = summary.DiscountTotal.Add(priced.DiscountTotal)
		summary.Total = summary.Total.Add(priced.LineTotal)

		if result.FreeShipping {
			summary.FreeShipping = true
		}
		if result.Applied != nil {
			if _, seen := seenPromos[result.Applied.RuleID]; !seen {
				seenPromos[result.Applied.RuleID] = struct{}{}
				summary.AppliedPromotionIDs = append(summary.AppliedPromotionIDs, result.Applied.RuleID)
			}
		}
	}

	summary.Subtotal = summary.Subtotal.Round(2)
	summary.DiscountTotal = summary.DiscountTotal.Round(2)
	summary.Total = summary.Total.Round(2)

	if !summary.FreeShipping && HasFreeShipping(rules, productIDs) {
		summary.FreeShipping = true
	}

	return summary
}
