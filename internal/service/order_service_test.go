package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

func checkoutFixture() (*mockCartRepo, *mockCatalogRepo, *mockPromotionRepo, uuid.UUID) {
	productID := uuid.New()
	cartRepo := newMockCartRepo()
	cartRepo.carts[testCartID] = []domain.LineItem{{
		ID:        uuid.New(),
		ProductID: productID,
		Name:      "croissant",
		UnitPrice: decimal.RequireFromString("0.01"), // client-manipulated price
		Quantity:  2,
		Category:  domain.CategoryPastry,
	}}
	catalog := &mockCatalogRepo{
		snap:   snapshotOf(productID),
		prices: map[uuid.UUID]decimal.Decimal{productID: decimal.RequireFromString("10.00")},
	}
	promos := &mockPromotionRepo{rules: []domain.PromotionRule{{
		ID:           uuid.New(),
		Title:        "20% off",
		Kind:         domain.DiscountPercentage,
		Value:        decPtr("20"),
		AppliesToAll: true,
		Active:       true,
	}}}
	return cartRepo, catalog, promos, productID
}

func TestPlaceOrderUsesServerTrustedPrices(t *testing.T) {
	cartRepo, catalog, promos, _ := checkoutFixture()
	orders := newMockOrderRepo()
	svc := NewOrderService(testRepos(cartRepo, catalog, promos, orders), zap.NewNop())

	order, summary, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{CustomerName: "Ada"})
	require.NoError(t, err)

	// 10.00 * 2 at 20% off, not the client's 0.01.
	assert.Equal(t, "20.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "4.00", order.DiscountTotal.StringFixed(2))
	assert.Equal(t, "16.00", order.Total.StringFixed(2))
	assert.Equal(t, domain.OrderStatusPendingConfirmation, order.Status)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "10.00", summary.Items[0].UnitPrice.StringFixed(2))

	// Order persisted, cart cleared.
	persisted, items, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, persisted.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "8.00", items[0].DiscountedUnitPrice.StringFixed(2))

	remaining, err := cartRepo.Get(context.Background(), testCartID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPlaceOrderFailsClosedOnSnapshotError(t *testing.T) {
	cartRepo, catalog, promos, _ := checkoutFixture()
	catalog.snapErr = &errors.ErrAvailabilityUnavailable{Cause: context.DeadlineExceeded}
	orders := newMockOrderRepo()
	svc := NewOrderService(testRepos(cartRepo, catalog, promos, orders), zap.NewNop())

	_, _, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{CustomerName: "Ada"})

	var unavailable *errors.ErrAvailabilityUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderRejectsAdjustedCart(t *testing.T) {
	cartRepo, catalog, promos, _ := checkoutFixture()
	// Add an item the snapshot does not know about.
	cartRepo.carts[testCartID] = append(cartRepo.carts[testCartID], domain.LineItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      "ghost cake",
		UnitPrice: decimal.RequireFromString("18.00"),
		Quantity:  1,
		Category:  domain.CategoryCake,
	})
	orders := newMockOrderRepo()
	svc := NewOrderService(testRepos(cartRepo, catalog, promos, orders), zap.NewNop())

	_, _, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{CustomerName: "Ada"})

	var conflict *errors.ErrCartConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"ghost cake"}, conflict.Removed)
	assert.Empty(t, orders.orders)
	// The filtered cart was persisted so the user sees the correction.
	assert.Len(t, cartRepo.carts[testCartID], 1)
}

func TestPlaceOrderRejectsPricingMismatch(t *testing.T) {
	cartRepo, catalog, promos, _ := checkoutFixture()
	orders := newMockOrderRepo()
	svc := NewOrderService(testRepos(cartRepo, catalog, promos, orders), zap.NewNop())

	wrong := decimal.RequireFromString("15.99")
	_, _, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{
		CustomerName:  "Ada",
		ExpectedTotal: &wrong,
	})

	var mismatch *errors.ErrPricingMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderAcceptsMatchingExpectedTotal(t *testing.T) {
	cartRepo, catalog, promos, _ := checkoutFixture()
	orders := newMockOrderRepo()
	svc := NewOrderService(testRepos(cartRepo, catalog, promos, orders), zap.NewNop())

	expected := decimal.RequireFromString("16.00")
	order, _, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{
		CustomerName:  "Ada",
		ExpectedTotal: &expected,
	})
	require.NoError(t, err)
	assert.Equal(t, "16.00", order.Total.StringFixed(2))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := NewOrderService(testRepos(nil, nil, nil, nil), zap.NewNop())

	_, _, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{CustomerName: "Ada"})

	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestPlaceOrderMissingCatalogPrice(t *testing.T) {
	cartRepo, catalog, promos, productID := checkoutFixture()
	delete(catalog.prices, productID)
	orders := newMockOrderRepo()
	svc := NewOrderService(testRepos(cartRepo, catalog, promos, orders), zap.NewNop())

	_, _, err := svc.PlaceOrder(context.Background(), testCartID, CheckoutRequest{CustomerName: "Ada"})

	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Empty(t, orders.orders)
}

func TestOrderStatusTransitions(t *testing.T) {
	orders := newMockOrderRepo()
	orderID := uuid.New()
	orders.orders[orderID] = &domain.Order{ID: orderID, Status: domain.OrderStatusPendingConfirmation}
	svc := NewOrderService(testRepos(nil, nil, nil, orders), zap.NewNop())

	require.NoError(t, svc.ConfirmOrder(context.Background(), orderID))
	assert.Equal(t, domain.OrderStatusConfirmed, orders.orders[orderID].Status)

	require.NoError(t, svc.CancelOrder(context.Background(), orderID))
	assert.Equal(t, domain.OrderStatusCancelled, orders.orders[orderID].Status)

	// Cancelled is terminal.
	err := svc.ConfirmOrder(context.Background(), orderID)
	var invalid *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &invalid)
}
