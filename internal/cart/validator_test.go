package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

func item(name string, category domain.Category) domain.LineItem {
	return domain.LineItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      name,
		UnitPrice: decimal.NewFromInt(5),
		Quantity:  1,
		Category:  category,
	}
}

func snapshotFor(items ...domain.LineItem) *domain.AvailabilitySnapshot {
	snap := &domain.AvailabilitySnapshot{
		Available:      make(map[uuid.UUID]struct{}),
		AvailableToday: make(map[uuid.UUID]struct{}),
		TodayKnown:     true,
	}
	for _, it := range items {
		snap.Available[it.ProductID] = struct{}{}
		snap.AvailableToday[it.ProductID] = struct{}{}
		if it.Options != nil {
			for _, f := range it.Options.FlavorIDs {
				snap.Available[f] = struct{}{}
			}
		}
	}
	return snap
}

func TestValidateUnchanged(t *testing.T) {
	items := []domain.LineItem{
		item("croissant", domain.CategoryPastry),
		item("sourdough", domain.CategoryBread),
	}

	result := Validate(items, snapshotFor(items...))

	unchanged, ok := result.(Unchanged)
	require.True(t, ok, "expected Unchanged, got %T", result)
	assert.Len(t, unchanged.Cart, 2)
}

func TestValidateRemovesMissingProduct(t *testing.T) {
	// Three items, snapshot omits one product id entirely.
	items := []domain.LineItem{
		item("croissant", domain.CategoryPastry),
		item("sourdough", domain.CategoryBread),
		item("ghost cake", domain.CategoryCake),
	}
	snap := snapshotFor(items[0], items[1])

	result := Validate(items, snap)

	adjusted, ok := result.(Adjusted)
	require.True(t, ok, "expected Adjusted, got %T", result)
	assert.Len(t, adjusted.Cart, 2)
	assert.Equal(t, []string{"ghost cake"}, adjusted.Removed)
}

func TestValidateMixedFamilies(t *testing.T) {
	// The first item fixes the family; exactly one of the two is removed,
	// never both, never neither.
	seasonal := item("holiday tray", domain.CategoryHolidayTray)
	regular := item("croissant", domain.CategoryPastry)
	snap := snapshotFor(seasonal, regular)

	result := Validate([]domain.LineItem{seasonal, regular}, snap)
	adjusted, ok := result.(Adjusted)
	require.True(t, ok)
	assert.Len(t, adjusted.Cart, 1)
	assert.Equal(t, seasonal.ID, adjusted.Cart[0].ID)
	assert.Equal(t, []string{"croissant"}, adjusted.Removed)

	// Reverse order keeps the regular item instead.
	result = Validate([]domain.LineItem{regular, seasonal}, snap)
	adjusted, ok = result.(Adjusted)
	require.True(t, ok)
	assert.Len(t, adjusted.Cart, 1)
	assert.Equal(t, regular.ID, adjusted.Cart[0].ID)
}

func TestValidateSeasonalBypassesDailyRotation(t *testing.T) {
	seasonal := item("holiday tray", domain.CategoryHolidayTray)
	snap := snapshotFor(seasonal)
	delete(snap.AvailableToday, seasonal.ProductID)

	result := Validate([]domain.LineItem{seasonal}, snap)

	_, ok := result.(Unchanged)
	assert.True(t, ok, "seasonal pre-orders must skip the daily-rotation check")
}

func TestValidateRegularRequiresDailyRotation(t *testing.T) {
	regular := item("croissant", domain.CategoryPastry)
	snap := snapshotFor(regular)
	delete(snap.AvailableToday, regular.ProductID)

	result := Validate([]domain.LineItem{regular}, snap)

	adjusted, ok := result.(Adjusted)
	require.True(t, ok)
	assert.Empty(t, adjusted.Cart)
	assert.Equal(t, []string{"croissant"}, adjusted.Removed)
}

func TestValidateDailyRotationSkippedWhenUnknown(t *testing.T) {
	regular := item("croissant", domain.CategoryPastry)
	snap := snapshotFor(regular)
	snap.AvailableToday = map[uuid.UUID]struct{}{}
	snap.TodayKnown = false

	result := Validate([]domain.LineItem{regular}, snap)

	_, ok := result.(Unchanged)
	assert.True(t, ok)
}

func TestValidateFlavorSubSelections(t *testing.T) {
	box := item("assorted box", domain.CategoryAssortedBox)
	box.Options = &domain.ItemOptions{
		BoxSize:   6,
		FlavorIDs: []uuid.UUID{uuid.New(), uuid.New()},
	}
	snap := snapshotFor(box)

	_, ok := Validate([]domain.LineItem{box}, snap).(Unchanged)
	assert.True(t, ok)

	// One flavor vanishes from the catalog: the whole box is invalid.
	delete(snap.Available, box.Options.FlavorIDs[1])
	adjusted, ok := Validate([]domain.LineItem{box}, snap).(Adjusted)
	require.True(t, ok)
	assert.Empty(t, adjusted.Cart)
	assert.Equal(t, []string{"assorted box"}, adjusted.Removed)
}

func TestValidateIdempotent(t *testing.T) {
	items := []domain.LineItem{
		item("croissant", domain.CategoryPastry),
		item("sourdough", domain.CategoryBread),
		item("ghost cake", domain.CategoryCake),
	}
	snap := snapshotFor(items[0], items[1])

	first := Validate(items, snap)
	adjusted, ok := first.(Adjusted)
	require.True(t, ok)

	second := Validate(adjusted.Cart, snap)
	unchanged, ok := second.(Unchanged)
	require.True(t, ok, "re-validating filtered output must be a no-op")
	assert.Equal(t, adjusted.Cart, unchanged.Cart)
}
