package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	promoIDs := make([]string, len(order.PromotionIDs))
	for i, id := range order.PromotionIDs {
		promoIDs[i] = id.String()
	}

	query := `
		INSERT INTO orders (id, cart_id, status, customer_name, customer_phone,
		                    subtotal, discount_total, total, free_shipping,
		                    promotion_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.ExecContext(ctx, query,
		order.ID,
		order.CartID,
		order.Status,
		order.CustomerName,
		order.CustomerPhone,
		order.Subtotal,
		order.DiscountTotal,
		order.Total,
		order.FreeShipping,
		pq.Array(promoIDs),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, unit_price,
		                         discounted_unit_price, quantity, line_total,
		                         promotion_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.UnitPrice,
			item.DiscountedUnitPrice,
			item.Quantity,
			item.LineTotal,
			item.PromotionID,
			item.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	query := `
		SELECT id, cart_id, status, customer_name, customer_phone,
		       subtotal, discount_total, total, free_shipping,
		       promotion_ids, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var promoIDs pq.StringArray

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CartID,
		&order.Status,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.Subtotal,
		&order.DiscountTotal,
		&order.Total,
		&order.FreeShipping,
		&promoIDs,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.Error(err))
		return nil, nil, err
	}

	for _, s := range promoIDs {
		promoID, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		order.PromotionIDs = append(order.PromotionIDs, promoID)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return &order, items, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, unit_price, discounted_unit_price,
		       quantity, line_total, promotion_id, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var promoID uuid.NullUUID

		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.DiscountedUnitPrice,
			&item.Quantity,
			&item.LineTotal,
			&promoID,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if promoID.Valid {
			id := promoID.UUID
			item.PromotionID = &id
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
