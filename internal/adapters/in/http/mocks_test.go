package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockChangeOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeOrderStatusHandler) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockEditOrderItemsHandler struct{ mock.Mock }

func (m *MockEditOrderItemsHandler) Handle(ctx context.Context, cmd commands.EditOrderItemsCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).(*queries.OrderView)
	return v, args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) (*queries.OrderPage, error) {
	args := m.Called(ctx, query)
	p, _ := args.Get(0).(*queries.OrderPage)
	return p, args.Error(1)
}
