package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOptionsKeyIgnoresFlavorOrder(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	first := &ItemOptions{BoxSize: 6, FlavorIDs: []uuid.UUID{a, b}, DoughType: "brioche"}
	second := &ItemOptions{BoxSize: 6, FlavorIDs: []uuid.UUID{b, a}, DoughType: "brioche"}

	assert.Equal(t, OptionsKey(first), OptionsKey(second))
}

func TestOptionsKeyNilAndEmptyMatch(t *testing.T) {
	assert.Equal(t, OptionsKey(nil), OptionsKey(&ItemOptions{}))
}

func TestOptionsKeyDistinguishesOptions(t *testing.T) {
	base := &ItemOptions{BoxSize: 6, DoughType: "brioche"}
	differentDough := &ItemOptions{BoxSize: 6, DoughType: "puff"}
	differentSize := &ItemOptions{BoxSize: 12, DoughType: "brioche"}

	assert.NotEqual(t, OptionsKey(base), OptionsKey(differentDough))
	assert.NotEqual(t, OptionsKey(base), OptionsKey(differentSize))
}

func TestMergeKeyRequiresSameProductAndOptions(t *testing.T) {
	productID := uuid.New()

	first := LineItem{ProductID: productID, Options: &ItemOptions{BoxSize: 6}}
	second := LineItem{ProductID: productID, Options: &ItemOptions{BoxSize: 6}}
	third := LineItem{ProductID: productID, Options: &ItemOptions{BoxSize: 12}}
	fourth := LineItem{ProductID: uuid.New(), Options: &ItemOptions{BoxSize: 6}}

	assert.Equal(t, first.MergeKey(), second.MergeKey())
	assert.NotEqual(t, first.MergeKey(), third.MergeKey())
	assert.NotEqual(t, first.MergeKey(), fourth.MergeKey())
}
