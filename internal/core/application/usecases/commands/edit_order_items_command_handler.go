package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// EditOrderItemsCommandHandler changes the composition of an editable order.
//
// Stock follows every change inside the same transaction: removals and
// reductions are returned unconditionally, increases and new lines are taken
// with conditional decrements. Existing lines keep the price they were ordered
// at; new lines take the price given with the change, or the catalog
// retail price now. Any failure rejects the whole batch.
type EditOrderItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.EventDispatcher
}

func NewEditOrderItemsCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.EventDispatcher,
) EditOrderItemsCommandHandler {
	return EditOrderItemsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle applies the changes and returns the refreshed order.
func (h *EditOrderItemsCommandHandler) Handle(ctx context.Context, cmd EditOrderItemsCommand) (*order.Order, error) {
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

	if err = o.EnsureEditable(); err != nil {
		return nil, err
	}

	editor := itemEditor{
		order:    o,
		ledger:   uow.StockLedger(),
		products: uow.ProductRepository(),
	}
	for _, change := range cmd.Changes() {
		if err = editor.apply(ctx, change); err != nil {
			return nil, err
		}
	}

	o.RecordItemsEdit(cmd.ActorID(), cmd.Source(), time.Now().UTC())

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, o.PullDomainEvents()...)
	return o, nil
}

type itemEditor struct {
	order    *order.Order
	ledger   ports.StockLedger
	products ports.ProductRepository
}

func (e itemEditor) apply(ctx context.Context, change ItemChange) error {
	if change.isRemoval() {
		return e.remove(ctx, change.ProductID)
	}
	if item, ok := e.order.Item(change.ProductID); ok {
		return e.resize(ctx, item.ProductName(), change)
	}
	return e.add(ctx, change)
}

func (e itemEditor) remove(ctx context.Context, productID int64) error {
	removed, ok, err := e.order.RemoveItem(productID)
	if err != nil || !ok {
		return err
	}
	return e.ledger.Increment(ctx, productID, removed.Quantity)
}

func (e itemEditor) resize(ctx context.Context, productName string, change ItemChange) error {
	delta, err := e.order.ChangeItemQuantity(change.ProductID, change.Quantity)
	if err != nil {
		return err
	}

	switch {
	case delta > 0:
		return e.take(ctx, change.ProductID, productName, delta)
	case delta < 0:
		return e.ledger.Increment(ctx, change.ProductID, -delta)
	default:
		return nil
	}
}

func (e itemEditor) add(ctx context.Context, change ItemChange) error {
	p, err := e.products.Get(ctx, change.ProductID)
	if err != nil {
		return notFound(err, "product", change.ProductID)
	}

	if err = e.take(ctx, p.ID, p.Name, change.Quantity); err != nil {
		return err
	}

	price := p.PriceRetail
	if change.Price.Valid {
		price = change.Price.Decimal
	}
	return e.order.AddItem(order.Line{
		ProductID:   p.ID,
		ProductCode: p.Code,
		ProductName: p.Name,
		Price:       price,
		Quantity:    change.Quantity,
	})
}

func (e itemEditor) take(ctx context.Context, productID int64, productName string, quantity int) error {
	ok, err := e.ledger.Decrement(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewInsufficientStockError(productID, productName)
	}
	return nil
}
