package outboxrepo

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

func (r *Repository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	query := `
        INSERT INTO outbox_events (topic, event_key, payload)
        VALUES ($1, $2, $3)
        RETURNING id, status, created_at
    `
	err := r.db.QueryRow(ctx, query, event.Topic, event.Key, event.Payload).
		Scan(&event.ID, &event.Status, &event.CreatedAt)
	if err != nil {
		zap.L().Error("can't save outbox event", zap.String("topic", event.Topic), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindPending(ctx context.Context, limit uint32) ([]domain.OutboxEvent, error) {
	query := `
        SELECT id, topic, event_key, payload, status, attempts, created_at
        FROM outbox_events
        WHERE status = 'pending'
        ORDER BY id ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get pending outbox events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var event domain.OutboxEvent
		err := rows.Scan(&event.ID, &event.Topic, &event.Key, &event.Payload, &event.Status, &event.Attempts, &event.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan outbox event row", zap.Error(err))
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	query := `
        UPDATE outbox_events
        SET status = 'sent', sent_at = NOW()
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("failed to mark outbox event sent", zap.Int64("event_id", id), zap.Error(err))
		return err
	}
	return nil
}

// MarkFailed records a failed delivery attempt. After maxAttempts the event
// is parked in status failed and no longer picked up.
func (r *Repository) MarkFailed(ctx context.Context, id int64, maxAttempts int) error {
	query := `
        UPDATE outbox_events
        SET attempts = attempts + 1,
            status = CASE WHEN attempts + 1 >= $2 THEN 'failed' ELSE status END
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id, maxAttempts); err != nil {
		zap.L().Error("failed to record outbox attempt", zap.Int64("event_id", id), zap.Error(err))
		return err
	}
	return nil
}
