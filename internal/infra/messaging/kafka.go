package messaging

import (
	"context"
	"fmt"
	"time"

	"gin-booking-engine/internal/pkg/config"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers one batch of outbox events, all or nothing.
type Publisher interface {
	Publish(ctx context.Context, events []shared.OutboxEvent) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish keys messages by aggregate so one booking's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, events []shared.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, len(events))
	for i, ev := range events {
		msgs[i] = kafka.Message{
			Key:   []byte(ev.AggregateID.String()),
			Value: ev.Payload,
			Time:  ev.CreatedAt,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(ev.ID.String())},
				{Key: "event_type", Value: []byte(ev.EventType)},
			},
		}
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write %d messages to kafka: %w", len(msgs), err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
