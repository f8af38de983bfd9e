package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ItemDiscount is the result of evaluating the promotion rules against a
// single cart line.
type ItemDiscount struct {
	DiscountedUnitPrice decimal.Decimal
	DiscountTotal       decimal.Decimal
	Applied             *domain.AppliedPromotion
	FreeShipping        bool
}

// BestDiscount selects the single best-applying rule for a line and computes
// its discount. Pure function over its inputs.
//
// Tie-break order: strictly greatest discount amount wins; on an exact tie
// a rule that also grants free shipping beats one that does not; if still
// tied the first rule in input order wins. A rule with a malformed magnitude
// never enters discount candidacy, but its free-shipping flag still counts —
// a bad rule must never block checkout, only fail to apply.
func BestDiscount(productID uuid.UUID, unitPrice decimal.Decimal, quantity int, rules []domain.PromotionRule) ItemDiscount {
	qty := decimal.NewFromInt(int64(quantity))
	lineBase := unitPrice.Mul(qty)

	var (
		winner       *domain.PromotionRule
		winnerAmount decimal.Decimal
		freeShipping bool
	)

	for i := range rules {
		rule := &rules[i]
		if !rule.AppliesTo(productID) {
			continue
		}
		if rule.GrantsFreeShipping() {
			freeShipping = true
		}
		if rule.Kind == domain.DiscountFreeShipping {
			continue // no discount amount to compete with
		}
		if rule.Validate() != nil {
			continue // malformed magnitude, excluded from candidacy
		}

		var amount decimal.Decimal
		switch rule.Kind {
		case domain.DiscountPercentage:
			amount = lineBase.Mul(rule.Value.Div(hundred))
		case domain.DiscountFixed:
			// per-unit fixed deduction scaled by quantity
			amount = rule.Value.Mul(qty)
		default:
			continue
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		if winner == nil ||
			amount.GreaterThan(winnerAmount) ||
			(amount.Equal(winnerAmount) && rule.GrantsFreeShipping() && !winner.GrantsFreeShipping()) {
			winner = rule
			winnerAmount = amount
		}
	}

	if winner == nil || winnerAmount.IsZero() {
		// No discount beat zero; a free-shipping-only rule may still apply.
		return ItemDiscount{
			DiscountedUnitPrice: unitPrice,
			DiscountTotal:       decimal.Zero,
			FreeShipping:        freeShipping,
		}
	}

	discounted := unitPrice.Sub(winnerAmount.Div(qty))
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}

	return ItemDiscount{
		DiscountedUnitPrice: discounted.Round(2),
		DiscountTotal:       winnerAmount.Round(2),
		Applied: &domain.AppliedPromotion{
			RuleID:       winner.ID,
			Title:        winner.Title,
			Description:  winner.Description,
			Kind:         winner.Kind,
			Value:        winner.Value,
			FreeShipping: winner.GrantsFreeShipping(),
		},
		FreeShipping: freeShipping,
	}
}
