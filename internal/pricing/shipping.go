package pricing

import (
	"github.com/google/uuid"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

// HasFreeShipping reports whether any rule grants a shipping waiver for the
// given product set. An AppliesToAll rule grants it cart-wide; a scoped rule
// only when at least one of productIDs is in its association set. A scoped
// rule with no productIDs supplied is treated as inapplicable.
//
// Callers are expected to pre-filter rules with ActiveRules; activity is not
// checked here.
func HasFreeShipping(rules []domain.PromotionRule, productIDs []uuid.UUID) bool {
	for i := range rules {
		rule := &rules[i]
		if !rule.GrantsFreeShipping() {
			continue
		}
		if rule.AppliesToAll {
			return true
		}
		for _, id := range productIDs {
			if rule.AppliesTo(id) {
				return true
			}
		}
	}
	return false
}
