package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

func TestIsActive(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	tests := []struct {
		name     string
		rule     domain.PromotionRule
		expected bool
	}{
		{"inactive flag", domain.PromotionRule{Active: false}, false},
		{"no window", domain.PromotionRule{Active: true}, true},
		{"inside window", domain.PromotionRule{Active: true, StartsAt: &earlier, EndsAt: &later}, true},
		{"before start", domain.PromotionRule{Active: true, StartsAt: &later}, false},
		{"after end", domain.PromotionRule{Active: true, EndsAt: &earlier}, false},
		{"at start bound", domain.PromotionRule{Active: true, StartsAt: &now}, true},
		{"at end bound", domain.PromotionRule{Active: true, EndsAt: &now}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsActive(&tt.rule, now))
		})
	}
}

func TestActiveRulesPreservesOrder(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	a := percentRule("10", true)
	b := percentRule("20", true)
	b.Active = false
	c := fixedRule("1", true)
	c.EndsAt = &past

	d := fixedRule("2", true)

	active := ActiveRules([]domain.PromotionRule{a, b, c, d}, now)

	assert.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, d.ID, active[1].ID)
}
