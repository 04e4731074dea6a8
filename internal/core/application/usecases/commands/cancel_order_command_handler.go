package commands

import (
	"context"
	"time"

	"onlineshop/internal/core/domain/services"
)

// CancelOrderCommandHandler moves Pending orders to Canceled.
//
// Check order: client role, order existence, order status, ownership. A
// delivered order therefore reports ErrOrderAlreadyDelivered even to its owner.
// Canceling does not put stock back.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(orderUoWFactory, observer)
//	cmd, err := NewCancelOrderCommand(orderID, customerID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrOrderAlreadyDelivered):
//	    // too late, return it instead
//	case errors.Is(err, errs.ErrInvalidOperation):
//	    // not a client, or not the owner
//	}
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	observer   Observer
}

// NewCancelOrderCommandHandler needs only an OrderUoWFactory; canceling does not touch stock.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, observer Observer) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		observer:   observer,
	}
}

// Handle cancels the order inside one transaction holding its row lock.
// The owner may cancel an already canceled order again; nothing changes.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (err error) {
	defer observe(h.observer, string(services.OperationCancelOrder), time.Now(), &err)

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

	if err = h.policy.Authorize(requester, services.OperationCancelOrder); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := lockOrder(ctx, orderRepo, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Cancel(requester.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
