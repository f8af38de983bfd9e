package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

// CatalogRepository supplies product data and the availability snapshot
type CatalogRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// GetPrices returns the server-trusted base price for each requested
	// product id; ids absent from the catalog are absent from the map.
	GetPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	AvailabilitySnapshot(ctx context.Context) (*domain.AvailabilitySnapshot, error)
}

// PromotionRepository supplies the promotion rule snapshot and the admin
// mutations over it
type PromotionRepository interface {
	List(ctx context.Context) ([]domain.PromotionRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PromotionRule, error)
	Create(ctx context.Context, rule *domain.PromotionRule) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// OrderRepository persists orders produced by the trusted order boundary
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, []*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// CartRepository persists the cart as a single whole document and signals
// observers on every change. Get returns an empty slice for an unknown cart.
type CartRepository interface {
	Get(ctx context.Context, cartID string) ([]domain.LineItem, error)
	Save(ctx context.Context, cartID string, items []domain.LineItem) error
	Clear(ctx context.Context, cartID string) error
	// Subscribe delivers a payload-less signal per change; observers re-read
	// the cart rather than receiving deltas. The returned func stops the
	// subscription.
	Subscribe(ctx context.Context, cartID string) (<-chan struct{}, func() error, error)
}

// Repositories bundles all repositories for injection
type Repositories struct {
	Catalog    CatalogRepository
	Promotions PromotionRepository
	Orders     OrderRepository
	Cart       CartRepository
}
