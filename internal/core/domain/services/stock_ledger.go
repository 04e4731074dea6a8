package services

import (
	"context"
	"errors"
	"fmt"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/domain/model/product"
	"onlineshop/internal/core/ports"
	"onlineshop/internal/pkg/errs"
)

// StockLedger tracks available quantity per product for one unit of work.
//
// It never locks in process. Products are read with GetForUpdate, so
// concurrent reservations of the same product serialize on the row lock held
// by the surrounding transaction. Loaded products are kept for the lifetime
// of the ledger so a product is locked and read only once.
type StockLedger struct {
	products ports.ProductRepository
	loaded   map[kernel.UUID]*product.Product
}

func NewStockLedger(products ports.ProductRepository) *StockLedger {
	return &StockLedger{
		products: products,
		loaded:   make(map[kernel.UUID]*product.Product),
	}
}

// HasSufficientStock reports whether productID has at least quantity units.
// An unknown product fails with errs.ErrInvalidProductID.
func (l *StockLedger) HasSufficientStock(ctx context.Context, productID kernel.UUID, quantity int) (bool, error) {
	p, err := l.load(ctx, productID)
	if err != nil {
		return false, err
	}
	return p.HasSufficientStock(quantity), nil
}

func (l *StockLedger) Decrement(ctx context.Context, productID kernel.UUID, quantity int) error {
	p, err := l.load(ctx, productID)
	if err != nil {
		return err
	}
	if err = p.DecreaseStock(quantity); err != nil {
		return err
	}
	return l.products.Update(ctx, p)
}

func (l *StockLedger) Increment(ctx context.Context, productID kernel.UUID, quantity int) error {
	p, err := l.load(ctx, productID)
	if err != nil {
		return err
	}
	if err = p.IncreaseStock(quantity); err != nil {
		return err
	}
	return l.products.Update(ctx, p)
}

// Reserve checks every line of request before touching any stock, then
// decrements each product by its requested quantity.
func (l *StockLedger) Reserve(ctx context.Context, request StockReservationRequest) error {
	if request.IsEmpty() {
		return fmt.Errorf("no products requested: %w", errs.ErrInvalidProducts)
	}

	items := request.Items()
	for _, item := range items {
		ok, err := l.HasSufficientStock(ctx, item.ProductID(), item.Quantity())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("product %s can not cover %d units: %w",
				item.ProductID(), item.Quantity(), errs.ErrNotEnoughStock)
		}
	}

	for _, item := range items {
		if err := l.Decrement(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}

// Restore puts back the quantity captured by each item.
func (l *StockLedger) Restore(ctx context.Context, items []order.Item) error {
	for _, item := range items {
		if err := l.Increment(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}

func (l *StockLedger) load(ctx context.Context, productID kernel.UUID) (*product.Product, error) {
	if p, ok := l.loaded[productID]; ok {
		return p, nil
	}

	p, err := l.products.GetForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, errs.ErrInvalidProductID)
		}
		return nil, err
	}

	l.loaded[productID] = p
	return p, nil
}
