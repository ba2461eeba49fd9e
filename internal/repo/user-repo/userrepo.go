package userrepo

import (
	"context"

	"go.uber.org/zap"

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

func (repo *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := repo.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		zap.L().Error("can't check user", zap.Int("user_id", id), zap.Error(err))
		return false, err
	}
	return exists, nil
}
