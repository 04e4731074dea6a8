package order

import (
	"errors"
	"fmt"
	"time"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/pkg/errs"
	"onlineshop/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - id and customer id are valid identifiers
//   - at least one item, each with a positive quantity
//   - status only changes through Deliver, Cancel and Return
//
// Each successful transition appends an Event to the pending domain events.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []Item
	status     Status

	domainEvents []Event
	guard        guard.ConstructorGuard
}

// NewOrder creates a Pending order owned by customerID and records OrderPlaced.
func NewOrder(id kernel.UUID, customerID kernel.UUID, items []Item) (*Order, error) {
	o, err := build(id, customerID, items, Pending)
	if err != nil {
		return nil, err
	}

	o.raise()
	return o, nil
}

// RestoreOrder rebuilds an order from persistence. No events are recorded.
func RestoreOrder(id kernel.UUID, customerID kernel.UUID, items []Item, status Status) (*Order, error) {
	return build(id, customerID, items, status)
}

func build(id kernel.UUID, customerID kernel.UUID, items []Item, status Status) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the ordered lines in their original sequence.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsDelivered() bool {
	return o.status.IsDelivered()
}

func (o *Order) IsCanceled() bool {
	return o.status.IsCanceled()
}

func (o *Order) IsReturned() bool {
	return o.status.IsReturned()
}

// IsOwnedBy compares identifiers by value.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// Deliver moves a Pending order to Delivered. Delivering an order that was
// already delivered succeeds without recording an event.
func (o *Order) Deliver() error {
	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

// Cancel moves a Pending order to Canceled. The status is checked before
// ownership, so a delivered order reports ErrOrderAlreadyDelivered to anyone.
// The owner may cancel a canceled order again; nothing is recorded.
func (o *Order) Cancel(requester kernel.UUID) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(requester) {
		return fmt.Errorf("customer %s does not own order %s: %w", requester, o.id, errs.ErrInvalidOperation)
	}

	o.moveTo(next)
	return nil
}

// Return moves a Delivered order to Returned. Restoring stock is up to the caller.
func (o *Order) Return() error {
	next, err := o.status.Return()
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

func (o *Order) moveTo(next Status) {
	if next == o.status {
		return
	}
	o.status = next
	o.raise()
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	events := make([]Event, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise() {
	o.domainEvents = append(o.domainEvents, Event{
		ID:         kernel.NewUUID(),
		Type:       eventTypeFor(o.status),
		OrderID:    o.id,
		CustomerID: o.customerID,
		Status:     o.status,
		Items:      o.Items(),
		OccurredAt: time.Now().UTC(),
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.ProductID().Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d: %w", i, err))
		}
		if item.Quantity() <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d: %d is not greater than 0", i, item.Quantity()))
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
