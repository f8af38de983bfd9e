package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mielhoja/bakeryapi/internal/domain"
	"github.com/mielhoja/bakeryapi/pkg/errors"
)

type promotionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *sql.DB, logger *zap.Logger) *promotionRepository {
	return &promotionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *promotionRepository) List(ctx context.Context) ([]domain.PromotionRule, error) {
	query := `
		SELECT id, title, description, kind, value, applies_to_all, free_shipping,
		       active, starts_at, ends_at, created_at, updated_at
		FROM promotions
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rules []domain.PromotionRule
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		rule, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		index[rule.ID] = len(rules)
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachProducts(ctx, rules, index); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PromotionRule, error) {
	query := `
		SELECT id, title, description, kind, value, applies_to_all, free_shipping,
		       active, starts_at, ends_at, created_at, updated_at
		FROM promotions
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	rule, err := scanPromotion(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "promotion", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get promotion", zap.Error(err))
		return nil, err
	}

	rules := []domain.PromotionRule{*rule}
	if err := r.attachProducts(ctx, rules, map[uuid.UUID]int{rule.ID: 0}); err != nil {
		return nil, err
	}

	return &rules[0], nil
}

func (r *promotionRepository) Create(ctx context.Context, rule *domain.PromotionRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	now := time.Now()
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO promotions (id, title, description, kind, value, applies_to_all,
		                        free_shipping, active, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var value decimal.NullDecimal
	if rule.Value != nil {
		value = decimal.NullDecimal{Decimal: *rule.Value, Valid: true}
	}

	_, err = tx.ExecContext(ctx, query,
		rule.ID,
		rule.Title,
		rule.Description,
		rule.Kind,
		value,
		rule.AppliesToAll,
		rule.FreeShipping,
		rule.Active,
		rule.StartsAt,
		rule.EndsAt,
		rule.CreatedAt,
		rule.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create promotion", zap.Error(err))
		return err
	}

	for _, productID := range rule.ProductIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO promotion_products (promotion_id, product_id) VALUES ($1, $2)`,
			rule.ID, productID,
		)
		if err != nil {
			r.logger.Error("Failed to associate promotion product", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *promotionRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE promotions SET active = false, updated_at = $2 WHERE id = $1`,
		id, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to deactivate promotion", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "promotion", ID: id.String()}
	}

	return nil
}

// attachProducts loads the explicit association sets for scoped rules
func (r *promotionRepository) attachProducts(ctx context.Context, rules []domain.PromotionRule, index map[uuid.UUID]int) error {
	if len(rules) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT promotion_id, product_id FROM promotion_products`,
	)
	if err != nil {
		r.logger.Error("Failed to query promotion products", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var promoID, productID uuid.UUID
		if err := rows.Scan(&promoID, &productID); err != nil {
			return err
		}
		if i, ok := index[promoID]; ok {
			rules[i].ProductIDs = append(rules[i].ProductIDs, productID)
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.PromotionRule, error) {
	var rule domain.PromotionRule
	var description sql.NullString
	var value decimal.NullDecimal
	var startsAt, endsAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.Title,
		&description,
		&rule.Kind,
		&value,
		&rule.AppliesToAll,
		&rule.FreeShipping,
		&rule.Active,
		&startsAt,
		&endsAt,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		rule.Description = description.String
	}
	if value.Valid {
		v := value.Decimal
		rule.Value = &v
	}
	if startsAt.Valid {
		t := startsAt.Time
		rule.StartsAt = &t
	}
	if endsAt.Valid {
		t := endsAt.Time
		rule.EndsAt = &t
	}

	return &rule, nil
}
