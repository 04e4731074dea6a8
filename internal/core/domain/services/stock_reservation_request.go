package services

import (
	"fmt"
	"sort"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/pkg/errs"
)

// StockReservationRequest is the validated input of order placement: one
// positive quantity per distinct product.
type StockReservationRequest struct {
	items []order.Item
}

// NewStockReservationRequest validates lines and orders them by product id,
// which is also the order in which stock rows get locked.
func NewStockReservationRequest(lines map[kernel.UUID]int) (StockReservationRequest, error) {
	if len(lines) == 0 {
		return StockReservationRequest{}, fmt.Errorf("no products requested: %w", errs.ErrInvalidProducts)
	}

	items := make([]order.Item, 0, len(lines))
	for productID, quantity := range lines {
		if err := productID.Validate(); err != nil {
			return StockReservationRequest{}, fmt.Errorf("%w: %w", errs.ErrInvalidProductID, err)
		}
		if quantity <= 0 {
			return StockReservationRequest{}, fmt.Errorf(
				"quantity %d for product %s is not positive: %w", quantity, productID, errs.ErrInvalidProducts)
		}

		item, err := order.NewItem(productID, quantity)
		if err != nil {
			return StockReservationRequest{}, err
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID().Less(items[j].ProductID())
	})

	return StockReservationRequest{items: items}, nil
}

// Items returns the requested lines in ascending product id order.
func (r StockReservationRequest) Items() []order.Item {
	items := make([]order.Item, len(r.items))
	copy(items, r.items)
	return items
}

func (r StockReservationRequest) IsEmpty() bool {
	return len(r.items) == 0
}

// TotalQuantity is the number of units the request takes out of stock.
func (r StockReservationRequest) TotalQuantity() int {
	total := 0
	for _, item := range r.items {
		total += item.Quantity()
	}
	return total
}
