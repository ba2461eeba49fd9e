package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, TxManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: TxManager,
	}
}

func (r *Repository) GetBalance(ctx context.Context, userID int) (float64, bool, error) {
	var balance float64
	err := r.db.QueryRow(ctx, "SELECT balance FROM users WHERE id = $1", userID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		zap.L().Error("failed to get user balance", zap.Int("user_id", userID), zap.Error(err))
		return 0, false, err
	}
	return balance, true, nil
}

// AddBalance applies a signed delta. The row is left untouched, and ok is
// false, when the user is missing or the balance would go negative.
func (r *Repository) AddBalance(ctx context.Context, userID int, delta float64) (balance float64, ok bool, err error) {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2 AND balance + $1 >= 0
		RETURNING balance
	`
	err = r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, delta, userID).Scan(&balance)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			zap.L().Error("failed to update user balance", zap.Int("user_id", userID), zap.Error(err))
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return balance, ok, nil
}
