package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/domain"
	"github.com/GlebRadaev/paybridge/internal/pg"
)

const orderColumns = `id, inv_id, user_id, amount, kind, payment_system, status, external_payment_id, description, created_at, updated_at, paid_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (id, user_id, amount, kind, payment_system, status, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING inv_id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		order.ID, order.UserID, order.Amount, order.Kind, string(order.PaymentSystem), order.Status, order.Description,
	).Scan(&order.InvID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE id = $1
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return order, nil
}

// MarkPaid flips a pending order to paid with a single conditional UPDATE.
// It returns nil without an error when no row changed.
func (r *Repository) MarkPaid(ctx context.Context, system domain.PaymentSystem, key domain.OrderKey, externalID string) (*domain.Order, error) {
	column, arg := keyColumn(key)
	query := fmt.Sprintf(`
        UPDATE orders
        SET status = 'paid', external_payment_id = $3, paid_at = NOW(), updated_at = NOW()
        WHERE %s = $1 AND payment_system = $2 AND status = 'pending'
        RETURNING %s
    `, column, orderColumns)

	order, err := scanOrder(r.db.QueryRow(ctx, query, arg, string(system), externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to mark order paid", zap.Stringer("order", key), zap.Error(err))
		return nil, err
	}
	return order, nil
}

// FindStatus returns an empty status when the order does not exist.
func (r *Repository) FindStatus(ctx context.Context, system domain.PaymentSystem, key domain.OrderKey) (string, error) {
	column, arg := keyColumn(key)
	query := fmt.Sprintf(`
        SELECT status
        FROM orders
        WHERE %s = $1 AND payment_system = $2
    `, column)

	var status string
	err := r.db.QueryRow(ctx, query, arg, string(system)).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		zap.L().Error("can't get order status", zap.Stringer("order", key), zap.Error(err))
		return "", err
	}
	return status, nil
}

func keyColumn(key domain.OrderKey) (string, any) {
	if key.ID != "" {
		return "id", key.ID
	}
	return "inv_id", key.InvID
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order  domain.Order
		system string
	)
	err := row.Scan(
		&order.ID, &order.InvID, &order.UserID, &order.Amount, &order.Kind, &system, &order.Status,
		&order.ExternalPaymentID, &order.Description, &order.CreatedAt, &order.UpdatedAt, &order.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	order.PaymentSystem = domain.PaymentSystem(system)
	return &order, nil
}
