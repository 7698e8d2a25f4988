package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// existingOrder builds an order owned by a user, moved through path, with its
// creation events already drained.
func existingOrder(t *testing.T, path ...order.Status) *order.Order {
	t.Helper()
	userID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), "20240401-000007", &userID, order.Retail, testCheckout(), []order.Line{
		{ProductID: 7, ProductCode: "MUG-7", ProductName: "Blue mug", Price: decimal.RequireFromString("100.00"), Quantity: 2},
		{ProductID: 3, ProductCode: "PLT-3", ProductName: "Plate", Price: decimal.RequireFromString("50.00"), Quantity: 1},
	}, time.Now().UTC())
	require.NoError(t, err)
	for _, status := range path {
		require.NoError(t, o.ChangeStatus(order.StatusChange{Target: status, Source: order.SourceManager}, time.Now().UTC()))
	}
	o.PullDomainEvents()
	return o
}

func newStatusHandler(uow *MockOrderUoW, dispatcher *MockEventDispatcher) *commands.ChangeOrderStatusCommandHandler {
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	h := commands.NewChangeOrderStatusCommandHandler(factory, dispatcher)
	return &h
}

func TestChangeOrderStatusCommandHandler_Handle_CancelRestoresStock(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	managerID := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "cancelled", &managerID, order.SourceManager, "customer called", "")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	dispatcher := new(MockEventDispatcher)
	var dispatched []order.DomainEvent
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.ledger.On("Increment", ctx, int64(3), 1).Return(nil).Once(),
		uow.ledger.On("Increment", ctx, int64(7), 2).Return(nil).Once(),
		uow.orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, mock.Anything).Run(func(args mock.Arguments) {
			dispatched = args.Get(1).([]order.DomainEvent)
		}).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := newStatusHandler(uow, dispatcher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, result.Status())
	assert.Equal(t, "customer called", result.CancelledReason())
	assert.Equal(t, order.SourceManager, result.CancelledBy())
	assert.Len(t, result.History(), 2)
	require.Len(t, dispatched, 1)
	changed := dispatched[0].(order.StatusChangedEvent)
	assert.Equal(t, order.StatusNewOrder, changed.OldStatus)
	assert.Equal(t, order.Cancelled, changed.NewStatus)
	uow.AssertExpectations(t)
	uow.orders.AssertExpectations(t)
	uow.ledger.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ReturnRestoresStock(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, order.Processing, order.Confirmed, order.Shipped, order.Completed)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "returned", nil, order.SourceManager, "", "")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	dispatcher := new(MockEventDispatcher)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.ledger.On("Increment", ctx, int64(3), 1).Return(nil).Once()
	uow.ledger.On("Increment", ctx, int64(7), 2).Return(nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	dispatcher.On("Dispatch", ctx, mock.Anything).Once()

	result, err := newStatusHandler(uow, dispatcher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Returned, result.Status())
	uow.ledger.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ForwardTransitionKeepsStock(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, order.Processing, order.Confirmed)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "shipped", nil, order.SourceManager, "", "TTN-20450")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	dispatcher := new(MockEventDispatcher)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	dispatcher.On("Dispatch", ctx, mock.Anything).Once()

	result, err := newStatusHandler(uow, dispatcher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipped, result.Status())
	assert.Equal(t, "TTN-20450", result.Delivery().TrackingNumber)
	uow.ledger.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ClientCannotCancelConfirmed(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t, order.Processing, order.Confirmed)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "cancelled", o.UserID(), order.SourceClientAction, "", "")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	dispatcher := new(MockEventDispatcher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err = newStatusHandler(uow, dispatcher).Handle(ctx, cmd)

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeForbidden))
	assert.Equal(t, order.Confirmed, o.Status())
	uow.ledger.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_UnknownTarget(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "teleported", nil, order.SourceManager, "", "")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newStatusHandler(uow, new(MockEventDispatcher)).Handle(ctx, cmd)

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeInvalidTransition))
	assert.Contains(t, err.Error(), "from new_order to teleported")
}

func TestChangeOrderStatusCommandHandler_Handle_ClientPairOutsideTable(t *testing.T) {
	for _, target := range []string{"completed", "teleported"} {
		t.Run(target, func(t *testing.T) {
			ctx := t.Context()
			o := existingOrder(t)
			cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), target, o.UserID(), order.SourceClientAction, "", "")
			require.NoError(t, err)

			uow := newMockOrderUoW()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			_, err = newStatusHandler(uow, new(MockEventDispatcher)).Handle(ctx, cmd)

			require.Error(t, err)
			assert.True(t, errs.HasCode(err, errs.CodeInvalidTransition))
			assert.Contains(t, err.Error(), "from new_order to "+target)
			assert.Equal(t, order.StatusNewOrder, o.Status())
			uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(id, "processing", nil, order.SourceManager, "", "")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newStatusHandler(uow, new(MockEventDispatcher)).Handle(ctx, cmd)

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeNotFound))
	var orderErr *errs.OrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, 404, orderErr.StatusCode)
}

func TestChangeOrderStatusCommandHandler_Handle_IncrementError(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "cancelled", nil, order.SourceManager, "", "")
	require.NoError(t, err)

	uow := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.ledger.On("Increment", ctx, int64(3), 1).Return(errors.New("connection reset")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newStatusHandler(uow, new(MockEventDispatcher)).Handle(ctx, cmd)

	require.EqualError(t, err, "connection reset")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewChangeOrderStatusCommand(t *testing.T) {
	t.Run("should reject missing fields", func(t *testing.T) {
		var id kernel.UUID

		_, err := commands.NewChangeOrderStatusCommand(id, " ", nil, order.ChangeSource("admin"), "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "changeSource")
	})

	t.Run("should trim free text", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), "shipped", nil, order.SourceSystem, "  ok ", " TTN ")

		require.NoError(t, err)
		assert.Equal(t, "ok", cmd.Comment())
		assert.Equal(t, "TTN", cmd.TrackingNumber())
	})
}
