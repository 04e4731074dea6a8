package commands

import (
	"errors"
	"fmt"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/services"
	"onlineshop/internal/pkg/errs"
	"onlineshop/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderLine is one requested product as received from a caller.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand asks to create an order for customerID, reserving stock
// for every line.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(customerID, []OrderLine{{ProductID: keyboardID, Quantity: 2}})
//	if err != nil {
//	    return err
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	request    services.StockReservationRequest

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand translates request lines into a stock reservation request.
// A product listed twice makes the whole request invalid.
func NewPlaceOrderCommand(customerID kernel.UUID, lines []OrderLine) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c PlaceOrderCommand) Request() services.StockReservationRequest {
	return c.request
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidCustomerID, err)
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	quantities := make(map[kernel.UUID]int, len(lines))
	for _, line := range lines {
		if _, seen := quantities[line.ProductID]; seen {
			return fmt.Errorf("product %s requested twice: %w", line.ProductID, errs.ErrInvalidProducts)
		}
		quantities[line.ProductID] = line.Quantity
	}

	request, err := services.NewStockReservationRequest(quantities)
	if err != nil {
		return err
	}
	c.request = request
	return nil
}
