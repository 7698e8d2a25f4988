package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler drives the order state machine.
//
// The order row is locked for the duration of the transaction, so two
// concurrent transitions of one order run one after the other and the second
// is validated against the status the first produced. Entering cancelled or
// returned puts every line's quantity back to stock in the same transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.EventDispatcher
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.EventDispatcher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle applies the transition and returns the refreshed order.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, notFound(err, "order", cmd.OrderID())
	}

	target, err := order.ParseStatus(cmd.Target())
	if err != nil {
		return nil, errs.NewInvalidTransitionError(o.Status(), statusName(cmd.Target()))
	}

	if err = o.ChangeStatus(order.StatusChange{
		Target:         target,
		Source:         cmd.Source(),
		ActorID:        cmd.ActorID(),
		Comment:        cmd.Comment(),
		TrackingNumber: cmd.TrackingNumber(),
	}, time.Now().UTC()); err != nil {
		return nil, err
	}

	if target.RestoresStock() {
		ledger := uow.StockLedger()
		for _, line := range byProductID(o.Lines()) {
			if err = ledger.Increment(ctx, line.ProductID, line.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, o.PullDomainEvents()...)
	return o, nil
}

// statusName prints an unrecognised status as sent by the caller.
type statusName string

func (s statusName) String() string {
	return string(s)
}
