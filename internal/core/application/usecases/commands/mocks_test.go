package commands_test

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/domain/model/wholesale"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

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
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) NextNumberSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id int64) (product.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(product.Product), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Decrement(ctx context.Context, productID int64, quantity int) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}
func (m *MockStockLedger) Increment(ctx context.Context, productID int64, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Items(ctx context.Context, userID kernel.UUID) ([]ports.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]ports.CartItem)
	return items, args.Error(1)
}
func (m *MockCartRepository) Clear(ctx context.Context, userID kernel.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockRuleRepository struct{ mock.Mock }

func (m *MockRuleRepository) ListActive(ctx context.Context) ([]wholesale.Rule, error) {
	args := m.Called(ctx)
	rules, _ := args.Get(0).([]wholesale.Rule)
	return rules, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}
func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockTx covers the TxManager part shared by every unit of work mock.
type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCheckoutUoW struct {
	MockTx
	orders   *MockOrderRepository
	products *MockProductRepository
	ledger   *MockStockLedger
	cart     *MockCartRepository
	rules    *MockRuleRepository
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository { return m.orders }
func (m *MockCheckoutUoW) ProductRepository() ports.ProductRepository { return m.products }
func (m *MockCheckoutUoW) StockLedger() ports.StockLedger { return m.ledger }
func (m *MockCheckoutUoW) CartRepository() ports.CartRepository { return m.cart }
func (m *MockCheckoutUoW) WholesaleRuleRepository() ports.WholesaleRuleRepository {
	return m.rules
}

func newMockCheckoutUoW() *MockCheckoutUoW {
	return &MockCheckoutUoW{
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		ledger:   new(MockStockLedger),
		cart:     new(MockCartRepository),
		rules:    new(MockRuleRepository),
	}
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockOrderUoW struct {
	MockTx
	orders   *MockOrderRepository
	products *MockProductRepository
	ledger   *MockStockLedger
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository { return m.orders }
func (m *MockOrderUoW) ProductRepository() ports.ProductRepository { return m.products }
func (m *MockOrderUoW) StockLedger() ports.StockLedger { return m.ledger }

func newMockOrderUoW() *MockOrderUoW {
	return &MockOrderUoW{
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		ledger:   new(MockStockLedger),
	}
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoW struct {
	MockTx
	outbox *MockOutboxRepository
}

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository { return m.outbox }

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventDispatcher struct{ mock.Mock }

func (m *MockEventDispatcher) Dispatch(ctx context.Context, events ...order.DomainEvent) {
	m.Called(ctx, events)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}
