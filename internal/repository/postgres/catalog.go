package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

type catalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *catalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, category, base_price, available, available_today, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.BasePrice,
		&p.Available,
		&p.AvailableToday,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *catalogRepository) GetPrices(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT id, base_price
		FROM products
		WHERE id = ANY($1::uuid[])
	`

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idStrs))
	if err != nil {
		r.logger.Error("Failed to query prices", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	prices := make(map[uuid.UUID]decimal.Decimal, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var price decimal.Decimal
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}

	return prices, rows.Err()
}

func (r *catalogRepository) AvailabilitySnapshot(ctx context.Context) (*domain.AvailabilitySnapshot, error) {
	query := `
		SELECT id, available_today
		FROM products
		WHERE available = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query availability", zap.Error(err))
		return nil, &errors.ErrAvailabilityUnavailable{Cause: err}
	}
	defer rows.Close()

	snap := &domain.AvailabilitySnapshot{
		Available:      make(map[uuid.UUID]struct{}),
		AvailableToday: make(map[uuid.UUID]struct{}),
		TodayKnown:     true,
		FetchedAt:      time.Now(),
	}

	for rows.Next() {
		var id uuid.UUID
		var today bool
		if err := rows.Scan(&id, &today); err != nil {
			return nil, &errors.ErrAvailabilityUnavailable{Cause: err}
		}
		snap.Available[id] = struct{}{}
		if today {
			snap.AvailableToday[id] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.ErrAvailabilityUnavailable{Cause: err}
	}

	return snap, nil
}
