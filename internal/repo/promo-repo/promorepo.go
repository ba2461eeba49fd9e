package promorepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Find(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `
        SELECT code, amount, max_uses, used_count, active, expires_at
        FROM promo_codes
        WHERE code = $1
    `
	var promo domain.PromoCode
	err := r.db.QueryRow(ctx, query, code).
		Scan(&promo.Code, &promo.Amount, &promo.MaxUses, &promo.UsedCount, &promo.Active, &promo.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find promo code", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &promo, nil
}

// Redeem bumps the usage counter of an active, unexpired code that still has
// uses left and returns the amount to credit.
func (r *Repository) Redeem(ctx context.Context, code string) (float64, bool, error) {
	query := `
        UPDATE promo_codes
        SET used_count = used_count + 1
        WHERE code = $1
          AND active
          AND (expires_at IS NULL OR expires_at > NOW())
          AND (max_uses IS NULL OR used_count < max_uses)
        RETURNING amount
    `
	var amount float64
	err := r.db.QueryRow(ctx, query, code).Scan(&amount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		zap.L().Error("can't redeem promo code", zap.String("code", code), zap.Error(err))
		return 0, false, err
	}
	return amount, true, nil
}

// AddActivation returns false when the user has already activated the code.
func (r *Repository) AddActivation(ctx context.Context, userID int, code string) (bool, error) {
	query := `
        INSERT INTO promo_activations (user_id, promo_code)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, userID, code)
	if err != nil {
		zap.L().Error("can't save promo activation", zap.Int("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
