package customer

import (
	"errors"
	"strings"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/pkg/errs"
	"onlineshop/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is a user of the shop. Clients place, cancel and return orders,
// expeditors deliver them, admins have no lifecycle rights.
type Customer struct {
	id   kernel.UUID
	name string
	role Role

	guard guard.ConstructorGuard
}

func NewCustomer(id kernel.UUID, name string, role Role) (*Customer, error) {
	c := &Customer{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRole(role),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Role() Role {
	return c.role
}

func (c *Customer) HasRole(role Role) bool {
	return c.role == role
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
