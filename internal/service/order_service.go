package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/cart"
	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/internal/pricing"
	"github.com/mielhoja/bakeryapi/internal/repository"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// PlaceOrder is the trusted order-creation boundary. It re-runs availability
// validation and the full pricing computation over server-trusted product
// data, so a client cannot submit manipulated discount values. Any condition
// it cannot resolve deterministically refuses the order: a failed
// availability fetch, items dropped by validation, a product without a
// catalog price, or a total that disagrees with the client's expected total.
func (s *orderService) PlaceOrder(ctx context.Context, cartID string, req CheckoutRequest) (*domain.Order, *domain.CartPricingSummary, error) {
	items, err := s.repos.Cart.Get(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, &errors.ErrValidation{Field: "cart", Message: "is empty"}
	}

	// Fail closed: an order cannot be priced without proof of current
	// availability.
	snap, err := s.repos.Catalog.AvailabilitySnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := cart.Validate(items, snap)
	if adjusted, ok := result.(cart.Adjusted); ok {
		if err := s.repos.Cart.Save(ctx, cartID, adjusted.Cart); err != nil {
			s.logger.Warn("Failed to persist adjusted cart", zap.Error(err))
		}
		return nil, nil, &errors.ErrCartConflict{Removed: adjusted.Removed}
	}
	items = result.Items()

	trusted, err := s.withServerPrices(ctx, items)
	if err != nil {
		return nil, nil, err
	}

	rules, err := s.repos.Promotions.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	summary := pricing.PriceCart(trusted, pricing.ActiveRules(rules, time.Now()))

	if req.ExpectedTotal != nil && !summary.Total.Equal(*req.ExpectedTotal) {
		return nil, nil, &errors.ErrPricingMismatch{
			Expected: summary.Total.StringFixed(2),
			Got:      req.ExpectedTotal.StringFixed(2),
		}
	}

	order := &domain.Order{
		ID:            uuid.New(),
		CartID:        cartID,
		Status:        domain.OrderStatusPendingConfirmation,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Subtotal:      summary.Subtotal,
		DiscountTotal: summary.DiscountTotal,
		Total:         summary.Total,
		FreeShipping:  summary.FreeShipping,
		PromotionIDs:  summary.AppliedPromotionIDs,
	}

	orderItems := make([]*domain.OrderItem, 0, len(summary.Items))
	for _, priced := range summary.Items {
		item := &domain.OrderItem{
			OrderID:             order.ID,
			ProductID:           priced.ProductID,
			Name:                priced.Name,
			UnitPrice:           priced.UnitPrice,
			DiscountedUnitPrice: priced.DiscountedUnitPrice,
			Quantity:            priced.Quantity,
			LineTotal:           priced.LineTotal,
		}
		if priced.Applied != nil {
			id := priced.Applied.RuleID
			item.PromotionID = &id
		}
		orderItems = append(orderItems, item)
	}

	if err := s.repos.Orders.Create(ctx, order, orderItems); err != nil {
		return nil, nil, err
	}

	if err := s.repos.Cart.Clear(ctx, cartID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.String("cart_id", cartID), zap.Error(err))
	}

	return order, &summary, nil
}

// GetOrder returns a persisted order with its items
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	return s.repos.Orders.GetByID(ctx, orderID)
}

// ConfirmOrder confirms a pending order
func (s *orderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusConfirmed)
}

// CancelOrder cancels an order
func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusCancelled)
}

func (s *orderService) transition(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) error {
	order, _, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(to) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   to,
		}
	}

	return s.repos.Orders.UpdateStatus(ctx, orderID, to)
}

// withServerPrices replaces every line's unit price with the catalog base
// price. The client-supplied price never reaches the authoritative
// computation.
func (s *orderService) withServerPrices(ctx context.Context, items []domain.LineItem) ([]domain.LineItem, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	prices, err := s.repos.Catalog.GetPrices(ctx, ids)
	if err != nil {
		return nil, err
	}

	trusted := make([]domain.LineItem, len(items))
	for i, item := range items {
		price, ok := prices[item.ProductID]
		if !ok {
			return nil, &errors.ErrNotFound{Resource: "product price", ID: item.ProductID.String()}
		}
		item.UnitPrice = price
		trusted[i] = item
	}

	return trusted, nil
}
