package ports

import (
	"context"

	"onlineshop/internal/core/domain/model/order"
)

// EventPublisher delivers committed order lifecycle events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
