package commands

import (
	"context"
	"time"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/domain/services"
)

// PlaceOrderCommandHandler creates Pending orders.
//
// Within one transaction it resolves the customer, checks the client role,
// verifies stock for every requested product before decrementing any of them,
// then persists the order. Any failure rolls back every stock change.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, observer)
//	cmd, err := NewPlaceOrderCommand(customerID, []OrderLine{{ProductID: pen, Quantity: 2}})
//	if err != nil {
//	    return err
//	}
//	orderID, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotEnoughStock):
//	    // nothing was reserved
//	case errors.Is(err, errs.ErrInvalidProductID):
//	    // a product does not exist
//	case err != nil:
//	    return err
//	}
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	observer   Observer
}

// NewPlaceOrderCommandHandler needs a UoWFactory because placing an order
// changes products and the order in the same transaction.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, observer Observer) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		observer:   observer,
	}
}

// Handle places the order and returns its identifier.
// Products are locked in ascending id order, the same order every placement
// uses, so concurrent placements sharing products serialize without deadlock.
// Returns ErrInvalidCustomerID, ErrInvalidOperation, ErrInvalidProductID or
// ErrNotEnoughStock for rejected placements.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (_ kernel.UUID, err error) {
	defer observe(h.observer, string(services.OperationPlaceOrder), time.Now(), &err)

	if err = cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requester, err := findRequester(ctx, uow.CustomerRepository(), cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.policy.Authorize(requester, services.OperationPlaceOrder); err != nil {
		return kernel.UUID{}, err
	}

	request := cmd.Request()
	ledger := services.NewStockLedger(uow.ProductRepository())
	if err = ledger.Reserve(ctx, request); err != nil {
		return kernel.UUID{}, err
	}

	placed, err := order.NewOrder(kernel.NewUUID(), requester.ID(), request.Items())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.observer.StockMoved(StockOut, request.TotalQuantity())
	return placed.ID(), nil
}
