package postgres

import (
	"context"
	"time"

	"onlineshop/internal/adapters/out/postgres/customerrepo"
	"onlineshop/internal/adapters/out/postgres/orderrepo"
	"onlineshop/internal/adapters/out/postgres/productrepo"
	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/ports"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultPublishTimeout bounds how long Commit waits for the event publisher.
const DefaultPublishTimeout = 5 * time.Second

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []order.Event
	ClearDomainEvents()
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per command so that
// concurrent commands never share transaction state or tracked aggregates.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
type GormUnitOfWorkFactory struct {
	db             *gorm.DB
	publisher      ports.EventPublisher
	logger         logrus.FieldLogger
	publishTimeout time.Duration
}

// NewGormUnitOfWorkFactory builds units of work on db. Events recorded by
// saved aggregates go to publisher after commit; publisher may be nil.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger logrus.FieldLogger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:             db,
		publisher:      publisher,
		logger:         logger.WithField("component", "unit_of_work"),
		publishTimeout: DefaultPublishTimeout,
	}
}

// Create produces a unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		publishTimeout:    f.publishTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork wraps one GORM transaction and remembers every order and
// product saved through its repositories. Once the transaction commits the
// pending domain events of those aggregates are handed to the publisher.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	p, err := uow.ProductRepository().GetForUpdate(ctx, productID)
//	if err != nil {
//	    return err
//	}
//	if err := p.DecreaseStock(quantity); err != nil {
//	    return err
//	}
//	if err := uow.ProductRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            logrus.FieldLogger
	publishTimeout    time.Duration
	trackedAggregates []trackedAggregate
}

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// Begin opens the transaction used by every repository handed out afterwards.
// Calling Begin again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit ends the transaction and then publishes the pending events of every
// tracked aggregate. A publish failure is logged and does not fail the commit.
//
// Publishing runs on a context detached from ctx and limited to the publish
// timeout, so a slow broker delays the caller by at most that long.
//
// Returns gorm.ErrInvalidTransaction when Begin was not called.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishDomainEvents(ctx)
	return nil
}

// Rollback discards the transaction together with the events recorded in it.
// Handlers defer it right after Begin; after a successful Commit it returns
// gorm.ErrInvalidTransaction, which they ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// CustomerRepository returns a customer repository bound to the open
// transaction, or to the plain connection when there is none. Customers
// record no events and are not tracked.
func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.session())
}

// OrderRepository returns an order repository bound to the open transaction.
// Orders it adds or updates are tracked for event publication.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.session(), uow)
}

// ProductRepository returns a product repository bound to the open transaction.
// GetForUpdate row locks last until Commit or Rollback.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.session(), uow)
}

// TrackAggregate registers an aggregate saved within this unit of work.
// Repositories call it on Add and Update; an id already tracked is ignored.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) session() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishDomainEvents(ctx context.Context) {
	var events []order.Event
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.DomainEvents()...)
		source.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	if uow.publisher == nil || len(events) == 0 {
		return
	}

	// Events of a committed transaction outlive a canceled request.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uow.publishTimeout)
	defer cancel()

	if err := uow.publisher.Publish(publishCtx, events...); err != nil {
		uow.logger.WithError(err).WithField("events", len(events)).Error("failed to publish order events")
	}
}
