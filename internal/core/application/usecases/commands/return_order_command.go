package commands

import (
	"errors"
	"fmt"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/pkg/errs"
	"onlineshop/internal/pkg/guard"
)

var ErrReturnOrderCommandIsNotConstructed = errors.New(
	"ReturnOrderCommand must be created via NewReturnOrderCommand constructor",
)

// ReturnOrderCommand sends a delivered order back and puts its items into stock again.
type ReturnOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReturnOrderCommand(orderID kernel.UUID, requesterID kernel.UUID) (ReturnOrderCommand, error) {
	cmd := ReturnOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
	); err != nil {
		return ReturnOrderCommand{}, err
	}

	return cmd, nil
}

func (c ReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrReturnOrderCommandIsNotConstructed)
}

func (c ReturnOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReturnOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

func (c *ReturnOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidOrderID, err)
	}
	c.orderID = orderID
	return nil
}

func (c *ReturnOrderCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidCustomerID, err)
	}
	c.requesterID = requesterID
	return nil
}
