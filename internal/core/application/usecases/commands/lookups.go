package commands

import (
	"context"
	"errors"
	"fmt"

	"onlineshop/internal/core/domain/model/customer"
	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/ports"
	"onlineshop/internal/pkg/errs"
)

// findRequester resolves the calling customer. Unknown ids are reported as ErrInvalidCustomerID.
func findRequester(ctx context.Context, customers ports.CustomerRepository, id kernel.UUID) (*customer.Customer, error) {
	requester, err := customers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("customer %s: %w", id, errs.ErrInvalidCustomerID)
		}
		return nil, err
	}
	return requester, nil
}

// lockOrder loads the order with a row lock. Unknown ids are reported as
// ErrInvalidOrderID wrapping the not found error.
func lockOrder(ctx context.Context, orders ports.OrderRepository, id kernel.UUID) (*order.Order, error) {
	o, err := orders.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidOrderID, err)
		}
		return nil, err
	}
	return o, nil
}
