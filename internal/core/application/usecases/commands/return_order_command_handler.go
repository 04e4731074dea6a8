package commands

import (
	"context"
	"time"

	"onlineshop/internal/core/domain/services"
)

// ReturnOrderCommandHandler moves Delivered orders to Returned and restores
// the quantity captured by every item through the stock ledger.
//
// Example:
//
//	handler := NewReturnOrderCommandHandler(uowFactory, observer)
//	cmd, err := NewReturnOrderCommand(orderID, customerID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrOrderNotDeliveredYet) {
//	    // cancel it instead
//	}
type ReturnOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	observer   Observer
}

// NewReturnOrderCommandHandler needs a UoWFactory because returning an order
// puts stock back in the same transaction.
func NewReturnOrderCommandHandler(uowFactory UoWFactory, observer Observer) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		observer:   observer,
	}
}

// Handle returns the order and restores stock for each of its items.
// A second return fails with ErrOrderAlreadyReturned so stock is restored once.
// Pending orders fail with ErrOrderNotDeliveredYet, canceled ones with ErrOrderCanceled.
func (h ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) (err error) {
	defer observe(h.observer, string(services.OperationReturnOrder), time.Now(), &err)

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requester, err := findRequester(ctx, uow.CustomerRepository(), cmd.RequesterID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(requester, services.OperationReturnOrder); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := lockOrder(ctx, orderRepo, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Return(); err != nil {
		return err
	}

	items := o.Items()
	if err = services.NewStockLedger(uow.ProductRepository()).Restore(ctx, items); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	units := 0
	for _, item := range items {
		units += item.Quantity()
	}
	h.observer.StockMoved(StockIn, units)
	return nil
}
