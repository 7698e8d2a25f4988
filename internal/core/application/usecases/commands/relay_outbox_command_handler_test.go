package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRelayHandler(uow *MockOutboxUoW, publisher *MockEventPublisher) *commands.RelayOutboxCommandHandler {
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()
	h := commands.NewRelayOutboxCommandHandler(factory, publisher)
	return &h
}

func pendingMessages(n int) []ports.OutboxMessage {
	messages := make([]ports.OutboxMessage, 0, n)
	for range n {
		messages = append(messages, ports.OutboxMessage{
			ID:        kernel.NewUUID(),
			EventType: "order.created",
			Topic:     "order-events",
			Key:       kernel.NewUUID().String(),
			Payload:   []byte(`{}`),
			CreatedAt: time.Now(),
		})
	}
	return messages
}

func TestRelayOutboxCommandHandler_Handle_PublishesAndMarksSent(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)
	messages := pendingMessages(2)

	uow := &MockOutboxUoW{outbox: new(MockOutboxRepository)}
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.outbox.On("FetchPending", ctx, 10).Return(messages, nil).Once(),
		publisher.On("Publish", ctx, messages).Return(nil).Once(),
		uow.outbox.On("MarkSent", ctx, []kernel.UUID{messages[0].ID, messages[1].ID}, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	published, err := newRelayHandler(uow, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, published)
	uow.AssertExpectations(t)
	uow.outbox.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_NothingPending(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	uow := &MockOutboxUoW{outbox: new(MockOutboxRepository)}
	publisher := new(MockEventPublisher)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.outbox.On("FetchPending", ctx, 10).Return([]ports.OutboxMessage{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	published, err := newRelayHandler(uow, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, published)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRelayOutboxCommandHandler_Handle_PublishErrorKeepsMessagesPending(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand(5)
	require.NoError(t, err)
	messages := pendingMessages(1)

	uow := &MockOutboxUoW{outbox: new(MockOutboxRepository)}
	publisher := new(MockEventPublisher)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.outbox.On("FetchPending", ctx, 5).Return(messages, nil).Once()
	publisher.On("Publish", ctx, messages).Return(errors.New("broker unavailable")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newRelayHandler(uow, publisher).Handle(ctx, cmd)

	require.EqualError(t, err, "broker unavailable")
	uow.outbox.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewRelayOutboxCommand(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0)
	require.Error(t, err)

	var cmd commands.RelayOutboxCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrRelayOutboxCommandIsNotConstructed)
}
