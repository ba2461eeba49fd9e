package ledgerrepo

import (
	"context"

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

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, amount, type, source, status, order_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		tx.ID, tx.UserID, tx.Amount, tx.Type, tx.Source, tx.Status, tx.OrderID, tx.Description,
	).Scan(&tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save ledger transaction", zap.Int("user_id", tx.UserID), zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Transaction, error) {
	query := `
        SELECT id, user_id, amount, type, source, status, order_id, description, created_at
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Source, &tx.Status, &tx.OrderID, &tx.Description, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate transactions", zap.Error(err))
		return nil, err
	}

	return transactions, nil
}
