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

type cartService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		logger: logger,
	}
}

// Get returns the persisted cart
func (s *cartService) Get(ctx context.Context, cartID string) ([]domain.LineItem, error) {
	return s.repos.Cart.Get(ctx, cartID)
}

// Add inserts an item into the cart. An item with the same product and
// structurally equal options merges into the existing entry; otherwise a new
// entry with a fresh id is appended. The whole cart is persisted.
func (s *cartService) Add(ctx context.Context, cartID string, req AddItemRequest) ([]domain.LineItem, error) {
	item := domain.LineItem{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		Category:  req.Category,
		Options:   req.Options,
		ImageURL:  req.ImageURL,
		AddedAt:   time.Now(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repos.Cart.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	merged := false
	key := item.MergeKey()
	for i := range items {
		if items[i].MergeKey() == key {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.repos.Cart.Save(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetQuantity updates an entry's quantity; zero or below removes the entry
func (s *cartService) SetQuantity(ctx context.Context, cartID string, itemID uuid.UUID, quantity int) ([]domain.LineItem, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, itemID)
	}

	items, err := s.repos.Cart.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: itemID.String()}
	}

	if err := s.repos.Cart.Save(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove drops an entry from the cart
func (s *cartService) Remove(ctx context.Context, cartID string, itemID uuid.UUID) ([]domain.LineItem, error) {
	items, err := s.repos.Cart.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.LineItem, 0, len(items))
	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: itemID.String()}
	}

	if err := s.repos.Cart.Save(ctx, cartID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear empties the cart
func (s *cartService) Clear(ctx context.Context, cartID string) error {
	return s.repos.Cart.Clear(ctx, cartID)
}

// Validate reconciles the persisted cart against a fresh availability
// snapshot. When items were dropped, the filtered cart is persisted before
// returning; an unchanged cart is not re-written. A snapshot fetch failure
// propagates so the caller can decide whether to fall back to the
// unvalidated cart.
func (s *cartService) Validate(ctx context.Context, cartID string) (cart.Result, error) {
	items, err := s.repos.Cart.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return cart.Unchanged{Cart: items}, nil
	}

	snap, err := s.repos.Catalog.AvailabilitySnapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := cart.Validate(items, snap)
	if adjusted, ok := result.(cart.Adjusted); ok {
		if err := s.repos.Cart.Save(ctx, cartID, adjusted.Cart); err != nil {
			return nil, err
		}
		s.logger.Info("Cart adjusted by availability validation",
			zap.String("cart_id", cartID),
			zap.Strings("removed", adjusted.Removed),
		)
	}

	return result, nil
}

// Quote prices the cart for display. Validation runs first; if the
// availability snapshot cannot be fetched the unvalidated persisted cart is
// priced instead and validated=false is returned.
func (s *cartService) Quote(ctx context.Context, cartID string, now time.Time) (*domain.CartPricingSummary, bool, error) {
	validated := true
	var items []domain.LineItem

	result, err := s.Validate(ctx, cartID)
	if err != nil {
		if _, ok := err.(*errors.ErrAvailabilityUnavailable); !ok {
			return nil, false, err
		}
		s.logger.Warn("Availability snapshot unavailable, pricing unvalidated cart", zap.Error(err))
		validated = false
		items, err = s.repos.Cart.Get(ctx, cartID)
		if err != nil {
			return nil, false, err
		}
	} else {
		items = result.Items()
	}

	rules, err := s.repos.Promotions.List(ctx)
	if err != nil {
		return nil, false, err
	}

	summary := pricing.PriceCart(items, pricing.ActiveRules(rules, now))
	return &summary, validated, nil
}
