package kafka

import (
	"encoding/json"
	"time"

	"onlineshop/internal/core/domain/model/order"
)

type itemMessage struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderEventMessage struct {
	EventID    string        `json:"eventId"`
	Type       string        `json:"type"`
	OrderID    string        `json:"orderId"`
	CustomerID string        `json:"customerId"`
	Status     string        `json:"status"`
	Items      []itemMessage `json:"items"`
	OccurredAt time.Time     `json:"occurredAt"`
}

func encode(event order.Event) ([]byte, error) {
	msg := orderEventMessage{
		EventID:    event.ID.String(),
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.String(),
		Status:     event.Status.String(),
		Items:      make([]itemMessage, 0, len(event.Items)),
		OccurredAt: event.OccurredAt,
	}
	for _, item := range event.Items {
		msg.Items = append(msg.Items, itemMessage{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
		})
	}
	return json.Marshal(msg)
}
