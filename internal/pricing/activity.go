package pricing

import (
	"time"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

// IsActive reports whether a rule is in effect at the given instant.
// Both window bounds are inclusive.
func IsActive(rule *domain.PromotionRule, now time.Time) bool {
	if !rule.Active {
		return false
	}
	if rule.StartsAt != nil && now.Before(*rule.StartsAt) {
		return false
	}
	if rule.EndsAt != nil && now.After(*rule.EndsAt) {
		return false
	}
	return true
}

// ActiveRules filters rules down to those in effect at the given instant,
// preserving input order.
func ActiveRules(rules []domain.PromotionRule, now time.Time) []domain.PromotionRule {
	active := make([]domain.PromotionRule, 0, len(rules))
	for _, r := range rules {
		if IsActive(&r, now) {
			active = append(active, r)
		}
	}
	return active
}
