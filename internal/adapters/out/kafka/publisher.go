package kafka

import (
	"context"
	"fmt"
	"time"

	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderEventPublisher struct {
	writer messageWriter
}

var _ ports.EventPublisher = (*OrderEventPublisher)(nil)

const (
	writeTimeout = 2 * time.Second
	maxAttempts  = 3
	batchTimeout = 10 * time.Millisecond
)

// NewOrderEventPublisher writes synchronously and waits for all in-sync replicas.
// An unreachable broker fails a write after maxAttempts tries of at most
// writeTimeout each, unless the caller's context expires first.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return newOrderEventPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
		MaxAttempts:            maxAttempts,
		BatchTimeout:           batchTimeout,
	})
}

func newOrderEventPublisher(writer messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := encode(event)
		if err != nil {
			return fmt.Errorf("encode %s event of order %s: %w", event.Type, event.OrderID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.OrderID.String()),
			Value: value,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(event.Type)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write order events: %w", err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
