package relay

import (
	"context"
	"strconv"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/domain"
)

//go:generate mockgen -source=publisher.go -destination=mock_publisher.go -package=relay

type Publisher interface {
	Publish(ctx context.Context, event domain.OutboxEvent) error
	Close() error
}

// NewPublisher returns a Kafka publisher when brokers are configured and a
// log-only publisher otherwise.
func NewPublisher(cfg config.Kafka) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		zap.L().Info("kafka brokers not configured, outbox events will be logged only")
		return LogPublisher{}, nil
	}
	producer, err := NewKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	zap.L().Info("kafka producer created", zap.Strings("brokers", cfg.Brokers))
	return NewKafkaPublisher(producer), nil
}

func NewKafkaProducer(cfg config.Kafka) (sarama.SyncProducer, error) {
	kafkaConfig := sarama.NewConfig()
	kafkaConfig.ClientID = cfg.ClientID
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll
	kafkaConfig.Producer.Retry.Max = 3
	kafkaConfig.Producer.Return.Successes = true
	kafkaConfig.Producer.Idempotent = true
	kafkaConfig.Net.MaxOpenRequests = 1
	kafkaConfig.Version = sarama.V2_1_0_0

	return sarama.NewSyncProducer(cfg.Brokers, kafkaConfig)
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
}

func NewKafkaPublisher(producer sarama.SyncProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(_ context.Context, event domain.OutboxEvent) error {
	msg := &sarama.ProducerMessage{
		Topic: event.Topic,
		Key:   sarama.StringEncoder(event.Key),
		Value: sarama.ByteEncoder(event.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(strconv.FormatInt(event.ID, 10))},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	zap.L().Debug("outbox event published",
		zap.Int64("event_id", event.ID),
		zap.String("topic", event.Topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher writes events to the application log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event domain.OutboxEvent) error {
	zap.L().Info("outbox event",
		zap.Int64("event_id", event.ID),
		zap.String("topic", event.Topic),
		zap.String("key", event.Key),
		zap.ByteString("payload", event.Payload),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }
