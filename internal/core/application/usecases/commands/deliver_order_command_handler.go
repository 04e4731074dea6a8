package commands

import (
	"context"
	"time"

	"onlineshop/internal/core/domain/services"
)

// DeliverOrderCommandHandler moves Pending orders to Delivered.
// The expeditor role is checked before the order state.
//
// Example:
//
//	handler := NewDeliverOrderCommandHandler(orderUoWFactory, observer)
//	cmd, err := NewDeliverOrderCommand(orderID, expeditorID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrOrderCanceled) {
//	    // canceled orders are never delivered
//	}
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	observer   Observer
}

// NewDeliverOrderCommandHandler needs only an OrderUoWFactory; delivery does not touch stock.
func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory, observer Observer) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		observer:   observer,
	}
}

// Handle delivers the order inside one transaction holding its row lock.
// Delivering an order that is already delivered or returned succeeds and
// changes nothing. Returns ErrInvalidOperation for non expeditors,
// ErrInvalidOrderID for unknown orders and ErrOrderCanceled for canceled ones.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (err error) {
	defer observe(h.observer, string(services.OperationDeliverOrder), time.Now(), &err)

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

	if err = h.policy.Authorize(requester, services.OperationDeliverOrder); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := lockOrder(ctx, orderRepo, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Deliver(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
