package order

import (
	"time"

	"onlineshop/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventOrderPlaced    EventType = "OrderPlaced"
	EventOrderDelivered EventType = "OrderDelivered"
	EventOrderCanceled  EventType = "OrderCanceled"
	EventOrderReturned  EventType = "OrderReturned"
)

// Event records a completed lifecycle step of one order. Events are collected
// on the aggregate and handed to a publisher once the transaction commits.
type Event struct {
	ID         kernel.UUID
	Type       EventType
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Status     Status
	Items      []Item
	OccurredAt time.Time
}

func eventTypeFor(status Status) EventType {
	switch status {
	case Pending:
		return EventOrderPlaced
	case Delivered:
		return EventOrderDelivered
	case Canceled:
		return EventOrderCanceled
	case Returned:
		return EventOrderReturned
	case Unknown:
	}
	return ""
}
