package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockPublisher) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	publisher := NewMockPublisher(ctrl)
	service := New(config.Relay{Interval: 10 * time.Millisecond, Batch: 100, Workers: 2}, repo, publisher)
	t.Cleanup(service.workerPool.Close)
	return service, repo, publisher
}

func TestProcessEvents(t *testing.T) {
	events := []domain.OutboxEvent{
		{ID: 1, Topic: domain.TopicBalanceChanged, Key: "7", Payload: []byte(`{}`)},
		{ID: 2, Topic: domain.TopicBalanceChanged, Key: "8", Payload: []byte(`{}`), Attempts: 4},
	}

	tests := []struct {
		name        string
		prepareMock func(repo *MockRepo, publisher *MockPublisher)
	}{
		{
			name: "All events published",
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindPending(gomock.Any(), uint32(100)).Return(events, nil)
				publisher.EXPECT().Publish(gomock.Any(), events[0]).Return(nil)
				publisher.EXPECT().Publish(gomock.Any(), events[1]).Return(nil)
				repo.EXPECT().MarkSent(gomock.Any(), int64(1)).Return(nil)
				repo.EXPECT().MarkSent(gomock.Any(), int64(2)).Return(nil)
			},
		},
		{
			name: "Failed delivery is recorded",
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindPending(gomock.Any(), uint32(100)).Return(events, nil)
				publisher.EXPECT().Publish(gomock.Any(), events[0]).Return(nil)
				publisher.EXPECT().Publish(gomock.Any(), events[1]).Return(errors.New("broker unavailable"))
				repo.EXPECT().MarkSent(gomock.Any(), int64(1)).Return(nil)
				repo.EXPECT().MarkFailed(gomock.Any(), int64(2), MaxAttempts).Return(nil)
			},
		},
		{
			name: "Nothing pending",
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindPending(gomock.Any(), uint32(100)).Return(nil, nil)
			},
		},
		{
			name: "Fetch error",
			prepareMock: func(repo *MockRepo, publisher *MockPublisher) {
				repo.EXPECT().FindPending(gomock.Any(), uint32(100)).Return(nil, errors.New("db error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, publisher := NewMock(t)
			tt.prepareMock(repo, publisher)

			service.processEvents(context.Background())
		})
	}
}

func TestProcessEvents_SkipsInFlight(t *testing.T) {
	service, repo, publisher := NewMock(t)
	event := domain.OutboxEvent{ID: 1, Topic: domain.TopicBalanceChanged, Key: "7"}
	service.inFlight.Store(int64(1), struct{}{})

	repo.EXPECT().FindPending(gomock.Any(), uint32(100)).Return([]domain.OutboxEvent{event}, nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	service.processEvents(context.Background())
}

func TestStart_StopsOnCancel(t *testing.T) {
	service, repo, publisher := NewMock(t)
	ctx, cancel := context.WithCancel(context.Background())

	polled := make(chan struct{}, 1)
	repo.EXPECT().FindPending(gomock.Any(), uint32(100)).DoAndReturn(func(context.Context, uint32) ([]domain.OutboxEvent, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(1)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	service.Start(ctx)
	select {
	case <-polled:
	case <-time.After(time.Second):
		t.Fatal("relay did not poll")
	}
	cancel()
	select {
	case <-service.Done():
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
