package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes repositories to one transaction. Domain events of the
// aggregates saved through it are published after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	CustomerRepository() CustomerRepository

	OrderRepository() OrderRepository

	ProductRepository() ProductRepository
}
