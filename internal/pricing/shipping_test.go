package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

func TestHasFreeShipping(t *testing.T) {
	inCart := uuid.New()
	notInCart := uuid.New()

	percentWithWaiver := percentRule("10", false, inCart)
	percentWithWaiver.FreeShipping = true

	tests := []struct {
		name       string
		rules      []domain.PromotionRule
		productIDs []uuid.UUID
		expected   bool
	}{
		{
			name:       "cart-wide waiver",
			rules:      []domain.PromotionRule{freeShippingRule(true)},
			productIDs: nil,
			expected:   true,
		},
		{
			name:       "scoped waiver intersects cart",
			rules:      []domain.PromotionRule{freeShippingRule(false, inCart)},
			productIDs: []uuid.UUID{inCart},
			expected:   true,
		},
		{
			name:       "scoped waiver misses cart",
			rules:      []domain.PromotionRule{freeShippingRule(false, notInCart)},
			productIDs: []uuid.UUID{inCart},
			expected:   false,
		},
		{
			name:       "scoped waiver without product ids is inapplicable",
			rules:      []domain.PromotionRule{freeShippingRule(false, inCart)},
			productIDs: nil,
			expected:   false,
		},
		{
			name:       "discount rule with shipping side-flag",
			rules:      []domain.PromotionRule{percentWithWaiver},
			productIDs: []uuid.UUID{inCart},
			expected:   true,
		},
		{
			name:       "plain discount rules grant nothing",
			rules:      []domain.PromotionRule{percentRule("50", true), fixedRule("3", true)},
			productIDs: []uuid.UUID{inCart},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasFreeShipping(tt.rules, tt.productIDs))
		})
	}
}
