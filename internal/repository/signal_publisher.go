package repository

import (
	"context"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	pkgkafka "SwingSignal/pkg/kafka"
)

type batchProducer interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// KafkaSignalPublisher publishes daily signals keyed by symbol.
type KafkaSignalPublisher struct {
	producer batchProducer
	topic    string
}

var _ domrepo.SignalPublisher = (*KafkaSignalPublisher)(nil)

func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, s models.DailySignal) error {
	return p.PublishBatch(ctx, []models.DailySignal{s})
}

func (p *KafkaSignalPublisher) PublishBatch(ctx context.Context, signals []models.DailySignal) error {
	if len(signals) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(signals))
	for i, s := range signals {
		msgs[i] = pkgkafka.Message{Key: []byte(s.Symbol), Value: s}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopSignalPublisher drops signals; used when Kafka is disabled.
type NopSignalPublisher struct{}

func (NopSignalPublisher) Publish(context.Context, models.DailySignal) error        { return nil }
func (NopSignalPublisher) PublishBatch(context.Context, []models.DailySignal) error { return nil }
func (NopSignalPublisher) Close() error                                             { return nil }
