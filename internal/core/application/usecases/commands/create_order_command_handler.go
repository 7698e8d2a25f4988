package commands

import (
	"cmp"
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// CreateOrderCommandHandler turns a cart into a persisted order.
//
// Within one transaction it resolves prices, evaluates wholesale rules,
// decrements stock with conditional updates, writes the order and clears the
// user's cart. Any failure rolls back every decrement already applied. The
// OrderCreated event is dispatched only after commit.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	evaluator  services.WholesaleRuleEvaluator
	dispatcher ports.EventDispatcher
}

func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	evaluator services.WholesaleRuleEvaluator,
	dispatcher ports.EventDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		evaluator:  evaluator,
		dispatcher: dispatcher,
	}
}

// Handle processes the checkout and returns the created order with items and history.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	items := cmd.Items()
	if len(items) == 0 && cmd.UserID() != nil {
		cartItems, err := uow.CartRepository().Items(ctx, *cmd.UserID())
		if err != nil {
			return nil, err
		}
		items = cartItems
	}
	if len(items) == 0 {
		return nil, errs.NewEmptyCartError()
	}

	lines, err := h.resolveLines(ctx, uow.ProductRepository(), items)
	if err != nil {
		return nil, err
	}

	if cmd.ClientType() == order.Wholesale {
		rules, err := uow.WholesaleRuleRepository().ListActive(ctx)
		if err != nil {
			return nil, err
		}
		if verdict := h.evaluator.Evaluate(cmd.ClientType(), lines, rules); !verdict.Passed {
			return nil, errs.NewRuleViolationError(verdict.Message)
		}
	}

	ledger := uow.StockLedger()
	for _, line := range byProductID(lines) {
		ok, err := ledger.Decrement(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errs.NewInsufficientStockError(line.ProductID, line.ProductName)
		}
	}

	orderRepo := uow.OrderRepository()
	seq, err := orderRepo.NextNumberSequence(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	number, err := order.FormatNumber(now, seq)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.UserID(), cmd.ClientType(), cmd.Checkout(), lines, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if cmd.UserID() != nil {
		if err = uow.CartRepository().Clear(ctx, *cmd.UserID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ctx, o.PullDomainEvents()...)
	return o, nil
}

func (h *CreateOrderCommandHandler) resolveLines(
	ctx context.Context,
	products ports.ProductRepository,
	items []ports.CartItem,
) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		p, err := products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, notFound(err, "product", item.ProductID)
		}
		price := p.PriceRetail
		if item.Price.Valid {
			price = item.Price.Decimal
		}
		lines = append(lines, order.Line{
			ProductID:   p.ID,
			ProductCode: cmp.Or(item.ProductCode, p.Code),
			ProductName: cmp.Or(item.ProductName, p.Name),
			Price:       price,
			Quantity:    item.Quantity,
			IsPromo:     item.IsPromo,
		})
	}
	return lines, nil
}
