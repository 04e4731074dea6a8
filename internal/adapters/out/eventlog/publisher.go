// Package eventlog publishes order events to the structured log. It is the
// fallback when no Kafka broker is configured.
package eventlog

import (
	"context"

	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/ports"

	"github.com/sirupsen/logrus"
)

type Publisher struct {
	logger logrus.FieldLogger
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(logger logrus.FieldLogger) *Publisher {
	return &Publisher{logger: logger.WithField("component", "order_events")}
}

func (p *Publisher) Publish(_ context.Context, events ...order.Event) error {
	for _, event := range events {
		p.logger.WithFields(logrus.Fields{
			"event_id":    event.ID.String(),
			"event_type":  string(event.Type),
			"order_id":    event.OrderID.String(),
			"customer_id": event.CustomerID.String(),
			"status":      event.Status.String(),
			"items":       len(event.Items),
		}).Info("order event")
	}
	return nil
}
