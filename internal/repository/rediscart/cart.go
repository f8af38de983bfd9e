// Package rediscart persists carts in Redis as single whole documents and
// broadcasts a payload-less change signal over pub/sub.
package rediscart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/domain"
)

const cartTTL = 30 * 24 * time.Hour

type cartDocument struct {
	Items     []domain.LineItem `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type cartRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCartRepository creates a new redis-backed cart repository
func NewCartRepository(client *redis.Client, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		client: client,
		logger: logger,
	}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

func changeChannel(cartID string) string {
	return "cart:changed:" + cartID
}

func (r *cartRepository) Get(ctx context.Context, cartID string) ([]domain.LineItem, error) {
	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var doc cartDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	if doc.Items == nil {
		doc.Items = []domain.LineItem{}
	}

	return doc.Items, nil
}

// Save replaces the whole cart document. There are no partial writes; the
// change signal is fire-and-forget and carries no payload.
func (r *cartRepository) Save(ctx context.Context, cartID string, items []domain.LineItem) error {
	doc := cartDocument{
		Items:     items,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cartID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	r.notify(ctx, cartID)
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}

	r.notify(ctx, cartID)
	return nil
}

func (r *cartRepository) Subscribe(ctx context.Context, cartID string) (<-chan struct{}, func() error, error) {
	pubsub := r.client.Subscribe(ctx, changeChannel(cartID))

	// Confirm the subscription before handing out the channel
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		for range pubsub.Channel() {
			select {
			case signals <- struct{}{}:
			default:
				// Observer hasn't drained the previous signal; it will
				// re-read the full cart anyway.
			}
		}
	}()

	return signals, pubsub.Close, nil
}

func (r *cartRepository) notify(ctx context.Context, cartID string) {
	if err := r.client.Publish(ctx, changeChannel(cartID), "").Err(); err != nil {
		r.logger.Warn("Failed to publish cart change", zap.String("cart_id", cartID), zap.Error(err))
	}
}
