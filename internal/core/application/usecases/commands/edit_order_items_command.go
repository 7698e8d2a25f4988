package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrEditOrderItemsCommandIsNotConstructed = errors.New(
		"EditOrderItemsCommand must be created via NewEditOrderItemsCommand constructor",
	)
)

// ItemChange is one requested change of an order's composition.
// Remove, or a zero Quantity, deletes the line. A Quantity on a product the
// order does not contain adds a new line, priced at Price when it is set and
// at the catalog retail price otherwise. Price is ignored for existing lines.
type ItemChange struct {
	ProductID int64
	Quantity  int
	Remove    bool
	Price     decimal.NullDecimal
}

func (c ItemChange) isRemoval() bool {
	return c.Remove || c.Quantity == 0
}

// EditOrderItemsCommand requests a batch of item changes, applied atomically.
// An empty batch is valid and only recomputes totals and records the edit.
type EditOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	changes []ItemChange
	actorID *kernel.UUID
	source  order.ChangeSource

	guard guard.ConstructorGuard
}

func NewEditOrderItemsCommand(
	orderID kernel.UUID,
	changes []ItemChange,
	actorID *kernel.UUID,
	source order.ChangeSource,
) (EditOrderItemsCommand, error) {
	cmd := EditOrderItemsCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setChanges(changes),
		cmd.setSource(source),
	); err != nil {
		return EditOrderItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderItemsCommandIsNotConstructed)
}

func (c EditOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EditOrderItemsCommand) Changes() []ItemChange {
	return c.changes
}

func (c EditOrderItemsCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c EditOrderItemsCommand) Source() order.ChangeSource {
	return c.source
}

func (c *EditOrderItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderItemsCommand) setChanges(changes []ItemChange) error {
	seen := make(map[int64]struct{}, len(changes))
	for _, change := range changes {
		if change.ProductID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%d is not greater than 0", change.ProductID))
		}
		if change.Quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", change.Quantity))
		}
		if change.Price.Valid && change.Price.Decimal.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", change.Price.Decimal))
		}
		if _, dup := seen[change.ProductID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("changes", fmt.Errorf("product %d is listed twice", change.ProductID))
		}
		seen[change.ProductID] = struct{}{}
	}

	c.changes = append([]ItemChange(nil), changes...)
	return nil
}

func (c *EditOrderItemsCommand) setSource(source order.ChangeSource) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
