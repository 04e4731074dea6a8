package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "onlineshop/internal/adapters/out/postgres"
	"onlineshop/internal/adapters/out/postgres/customerrepo"
	"onlineshop/internal/adapters/out/postgres/orderrepo"
	"onlineshop/internal/adapters/out/postgres/productrepo"
	"onlineshop/internal/core/domain/model/customer"
	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/domain/model/product"
	"onlineshop/internal/pkg/errs"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	if fn, ok := args.Get(0).(func(context.Context, ...order.Event) error); ok {
		return fn(ctx, events...)
	}
	return args.Error(0)
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockEventPublisher
	logHook   *logrustest.Hook
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, products, customers").Error
	suite.Require().NoError(err)

	logger, hook := logrustest.NewNullLogger()
	suite.logHook = hook
	suite.publisher = new(MockEventPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, logger)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), 2)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item})
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentUnits() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.CustomerRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested begin reuses the open transaction")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitAndRollbackWithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesEventsAfterCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.Event) bool {
		if len(events) != 1 || events[0].Type != order.EventOrderPlaced {
			return false
		}
		var count int64
		suite.db.Model(&orderrepo.OrderDTO{}).Where("id = ?", o.ID().Google()).Count(&count)
		return count == 1
	})).Return(nil).Once()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.Empty(o.DomainEvents(), "published events are cleared from the aggregate")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Len(o.DomainEvents(), 1, "events stay on the aggregate after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_SpansSeveralRepositories() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	client, err := customer.NewCustomer(kernel.NewUUID(), "alice", customer.Client)
	suite.Require().NoError(err)
	p, err := product.NewProduct(kernel.NewUUID(), "Lamp", 4)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, client))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, p))

	locked, err := uow.ProductRepository().GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.DecreaseStock(3))
	suite.Require().NoError(uow.ProductRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	loadedCustomer, err := reader.CustomerRepository().Get(ctx, client.ID())
	suite.Require().NoError(err)
	suite.Equal(customer.Client, loadedCustomer.Role())

	loadedProduct, err := reader.ProductRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(1, loadedProduct.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishFailureIsLogged() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))

	suite.Require().NoError(uow.Commit(ctx), "the transaction is already durable")

	entry := suite.logHook.LastEntry()
	suite.Require().NotNil(entry)
	suite.Equal(logrus.ErrorLevel, entry.Level)
	suite.Equal("failed to publish order events", entry.Message)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishOutlivesCanceledRequest() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publishErr error
	var hasDeadline bool
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		publishCtx := args.Get(0).(context.Context)
		cancel()
		_, hasDeadline = publishCtx.Deadline()
		publishErr = publishCtx.Err()
	}).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.True(hasDeadline, "publishing is time bounded")
	suite.NoError(publishErr, "publishing is not tied to the request")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_SlowPublisherIsCutOff() {
	ctx := context.Background()
	suite.factory.SetPublishTimeout(50 * time.Millisecond)
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(func(ctx context.Context, _ ...order.Event) error {
		<-ctx.Done()
		return ctx.Err()
	}).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))

	started := time.Now()
	suite.Require().NoError(uow.Commit(ctx))

	suite.Less(time.Since(started), 2*time.Second)
	entry := suite.logHook.LastEntry()
	suite.Require().NotNil(entry)
	suite.Equal("failed to publish order events", entry.Message)
	suite.ErrorIs(entry.Data[logrus.ErrorKey].(error), context.DeadlineExceeded)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackAggregate_DeduplicatesByID() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.Event) bool {
		return len(events) == 2
	})).Return(nil).Once()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(o.Deliver())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
