package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"onlineshop/internal/core/application/usecases/commands"
	"onlineshop/internal/core/domain/model/customer"
	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/core/domain/model/product"
	"onlineshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type observation struct {
	action string
	err    error
}

type recordingObserver struct {
	mu       sync.Mutex
	handled  []observation
	unitsIn  int
	unitsOut int
}

func (r *recordingObserver) CommandHandled(action string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, observation{action: action, err: err})
}

func (r *recordingObserver) StockMoved(direction string, units int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if direction == commands.StockIn {
		r.unitsIn += units
	} else {
		r.unitsOut += units
	}
}

// fixture wires a mocked unit of work whose repository accessors may be called any number of times.
type fixture struct {
	ctx       context.Context
	customers *MockCustomerRepository
	orders    *MockOrderRepository
	products  *MockProductRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	orderUoWs *MockOrderUoWFactory
	observer  *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:       t.Context(),
		customers: new(MockCustomerRepository),
		orders:    new(MockOrderRepository),
		products:  new(MockProductRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		orderUoWs: new(MockOrderUoWFactory),
		observer:  &recordingObserver{},
	}
	f.uow.On("CustomerRepository").Return(f.customers).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("ProductRepository").Return(f.products).Maybe()
	f.uow.On("Rollback", f.ctx).Return(nil).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()
	f.orderUoWs.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.customers.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func (f *fixture) expectRequester(t *testing.T, role customer.Role) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), role.String()+" user", role)
	require.NoError(t, err)
	f.customers.On("Get", f.ctx, c.ID()).Return(c, nil).Once()
	return c
}

func (f *fixture) expectProduct(t *testing.T, id kernel.UUID, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, "product", stock)
	require.NoError(t, err)
	f.products.On("GetForUpdate", f.ctx, id).Return(p, nil).Once()
	return p
}

func (f *fixture) expectOrder(t *testing.T, owner kernel.UUID, status order.Status, items ...order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		item, err := order.NewItem(kernel.NewUUID(), 1)
		require.NoError(t, err)
		items = []order.Item{item}
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), owner, items, status)
	require.NoError(t, err)
	f.orders.On("GetForUpdate", f.ctx, o.ID()).Return(o, nil).Once()
	return o
}
