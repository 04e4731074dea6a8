// Package commands contains the order lifecycle operations that modify state:
// placing, delivering, canceling and returning orders. Each handler runs in a
// single unit of work covering read, authorization, guard and mutation.
package commands

import (
	"context"

	"onlineshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CustomerRepoFactory resolves requesters within the transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	// Products loaded with GetForUpdate stay locked until Commit or Rollback.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW serves commands that only change an order: deliver and cancel.
	OrderUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW serves commands that move stock together with the order: place and return.
	//
	// Example:
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ledger := services.NewStockLedger(uow.ProductRepository())
	//   // ... reserve stock, add the order
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		ProductRepoFactory
	}

	// UoWFactory creates new unit of work instances for stock moving commands.
	UoWFactory interface {
		Create() UoW
	}
)
