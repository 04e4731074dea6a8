package ports

import (
	"context"

	"onlineshop/internal/core/domain/model/customer"
	"onlineshop/internal/core/domain/model/kernel"
)

type CustomerRepository interface {
	Add(ctx context.Context, customer *customer.Customer) error

	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
