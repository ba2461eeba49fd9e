package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
)

//go:generate mockgen -source=relay.go -destination=mock_relay.go -package=relay

// MaxAttempts is how many failed deliveries park an event as failed.
const MaxAttempts = 5

type Repo interface {
	FindPending(ctx context.Context, limit uint32) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, maxAttempts int) error
}

// Service moves committed outbox events to the publisher.
type Service struct {
	repo           Repo
	publisher      Publisher
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
	inFlight       sync.Map
	done           chan struct{}
}

func New(cfg config.Relay, repo Repo, publisher Publisher) *Service {
	return &Service{
		repo:           repo,
		publisher:      publisher,
		limit:          cfg.Batch,
		workerPool:     NewWorkerPool(cfg.Workers),
		updateInterval: cfg.Interval,
		done:           make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("outbox relay started", zap.Duration("interval", s.updateInterval))
	go s.run(ctx)
}

// Done is closed once the relay has stopped and no publish is in progress.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer close(s.done)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping outbox relay")
			return
		case <-ticker.C:
			s.processEvents(ctx)
		}
	}
}

// processEvents dispatches one batch and waits until every event of it is handled.
func (s *Service) processEvents(ctx context.Context) {
	events, err := s.repo.FindPending(ctx, s.limit)
	if err != nil {
		zap.L().Error("failed to fetch outbox events", zap.Error(err))
		return
	}

	var (
		g    errgroup.Group
		done sync.WaitGroup
	)
	for _, event := range events {
		if _, loaded := s.inFlight.LoadOrStore(event.ID, struct{}{}); loaded {
			continue
		}

		done.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer done.Done()
				defer s.inFlight.Delete(event.ID)
				return s.handleEvent(ctx, event)
			})
			if err != nil {
				done.Done()
				s.inFlight.Delete(event.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error dispatching outbox events", zap.Error(err))
	}
	done.Wait()
}

func (s *Service) handleEvent(ctx context.Context, event domain.OutboxEvent) error {
	if err := s.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("outbox event delivery failed",
			zap.Int64("event_id", event.ID),
			zap.Int("attempt", event.Attempts+1),
			zap.Error(err),
		)
		if markErr := s.repo.MarkFailed(ctx, event.ID, MaxAttempts); markErr != nil {
			return fmt.Errorf("failed to record attempt for event %d: %w", event.ID, markErr)
		}
		return nil
	}

	if err := s.repo.MarkSent(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to mark event %d sent: %w", event.ID, err)
	}
	return nil
}
