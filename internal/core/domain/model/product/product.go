package product

import (
	"errors"
	"fmt"
	"strings"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/pkg/errs"
	"onlineshop/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned when a Product was not built by NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a sellable item together with its available stock.
// Stock never drops below zero.
type Product struct {
	id    kernel.UUID
	name  string
	stock int

	guard guard.ConstructorGuard
}

func NewProduct(id kernel.UUID, name string, stock int) (*Product, error) {
	p := &Product{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product loaded from persistence.
func RestoreProduct(id kernel.UUID, name string, stock int) (*Product, error) {
	return NewProduct(id, name, stock)
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Stock() int {
	return p.stock
}

// HasSufficientStock reports whether quantity units can be taken.
func (p *Product) HasSufficientStock(quantity int) bool {
	return p.stock >= quantity
}

// DecreaseStock takes quantity units out of stock.
func (p *Product) DecreaseStock(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if !p.HasSufficientStock(quantity) {
		return fmt.Errorf("product %s has %d units, %d requested: %w", p.id, p.stock, quantity, errs.ErrNotEnoughStock)
	}

	p.stock -= quantity
	return nil
}

// IncreaseStock puts quantity units back into stock.
func (p *Product) IncreaseStock(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	p.stock += quantity
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	p.stock = stock
	return nil
}
