package http_test

import (
	"context"

	"onlineshop/internal/core/application/usecases/commands"
	"onlineshop/internal/core/application/usecases/queries"
	"onlineshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockPlaceOrderHandler struct{ mock.Mock }

func (m *MockPlaceOrderHandler) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockDeliverOrderHandler struct{ mock.Mock }

func (m *MockDeliverOrderHandler) Handle(ctx context.Context, cmd commands.DeliverOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCancelOrderHandler struct{ mock.Mock }

func (m *MockCancelOrderHandler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockReturnOrderHandler struct{ mock.Mock }

func (m *MockReturnOrderHandler) Handle(ctx context.Context, cmd commands.ReturnOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockGetProductHandler struct{ mock.Mock }

func (m *MockGetProductHandler) Handle(ctx context.Context, query queries.GetProductQuery) (queries.GetProductQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetProductQueryResponse), args.Error(1)
}
