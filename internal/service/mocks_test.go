package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/internal/repository"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

type mockCartRepo struct {
	m       sync.RWMutex
	carts   map[string][]domain.LineItem
	saves   int
	signals int
	getErr  error
	saveErr error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string][]domain.LineItem)}
}

func (m *mockCartRepo) Get(_ context.Context, cartID string) ([]domain.LineItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	items, ok := m.carts[cartID]
	if !ok {
		return []domain.LineItem{}, nil
	}
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *mockCartRepo) Save(_ context.Context, cartID string, items []domain.LineItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[cartID] = items
	m.saves++
	m.signals++
	return nil
}

func (m *mockCartRepo) Clear(_ context.Context, cartID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.carts, cartID)
	m.signals++
	return nil
}

func (m *mockCartRepo) Subscribe(context.Context, string) (<-chan struct{}, func() error, error) {
	ch := make(chan struct{})
	close(ch)
	return ch, func() error { return nil }, nil
}

type mockCatalogRepo struct {
	snap     *domain.AvailabilitySnapshot
	snapErr  error
	prices   map[uuid.UUID]decimal.Decimal
	priceErr error
}

func (m *mockCatalogRepo) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (m *mockCatalogRepo) GetPrices(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	if m.priceErr != nil {
		return nil, m.priceErr
	}
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, id := range ids {
		if p, ok := m.prices[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) AvailabilitySnapshot(context.Context) (*domain.AvailabilitySnapshot, error) {
	if m.snapErr != nil {
		return nil, m.snapErr
	}
	return m.snap, nil
}

type mockPromotionRepo struct {
	rules []domain.PromotionRule
	err   error
}

func (m *mockPromotionRepo) List(context.Context) ([]domain.PromotionRule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rules, nil
}

func (m *mockPromotionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.PromotionRule, error) {
	for i := range m.rules {
		if m.rules[i].ID == id {
			return &m.rules[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "promotion", ID: id.String()}
}

func (m *mockPromotionRepo) Create(_ context.Context, rule *domain.PromotionRule) error {
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *mockPromotionRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for i := range m.rules {
		if m.rules[i].ID == id {
			m.rules[i].Active = false
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "promotion", ID: id.String()}
}

type mockOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
	items  map[uuid.UUID][]*domain.OrderItem
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[uuid.UUID]*domain.Order),
		items:  make(map[uuid.UUID][]*domain.OrderItem),
	}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	m.items[order.ID] = items
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return order, m.items[id], nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, ok := m.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	return nil
}

func testRepos(cart *mockCartRepo, catalog *mockCatalogRepo, promos *mockPromotionRepo, orders *mockOrderRepo) *repository.Repositories {
	if cart == nil {
		cart = newMockCartRepo()
	}
	if catalog == nil {
		catalog = &mockCatalogRepo{}
	}
	if promos == nil {
		promos = &mockPromotionRepo{}
	}
	if orders == nil {
		orders = newMockOrderRepo()
	}
	return &repository.Repositories{
		Catalog:    catalog,
		Promotions: promos,
		Orders:     orders,
		Cart:       cart,
	}
}

func snapshotOf(ids ...uuid.UUID) *domain.AvailabilitySnapshot {
	snap := &domain.AvailabilitySnapshot{
		Available:      make(map[uuid.UUID]struct{}),
		AvailableToday: make(map[uuid.UUID]struct{}),
		TodayKnown:     true,
	}
	for _, id := range ids {
		snap.Available[id] = struct{}{}
		snap.AvailableToday[id] = struct{}{}
	}
	return snap
}
