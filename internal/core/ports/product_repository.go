package ports

import (
	"context"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/product"
)

type ProductRepository interface {
	Add(ctx context.Context, product *product.Product) error

	Update(ctx context.Context, product *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate loads the product and locks its stock row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
