package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a checkout request.
//
// For a registered user (userID set) with no explicit items, the user's cart
// is checked out and then cleared. Guests pass their items explicitly.
// An empty item set is not a validation error; the handler answers EMPTY_CART.
//
// Example:
//
//	userID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(&userID, order.Retail, checkout, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID     *kernel.UUID
	clientType order.ClientType
	checkout   order.Checkout
	items      []ports.CartItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates checkout input. Contact details are
// validated again by the Order aggregate.
func NewCreateOrderCommand(
	userID *kernel.UUID,
	clientType order.ClientType,
	checkout order.Checkout,
	items []ports.CartItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		checkout: checkout,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setClientType(clientType),
		checkout.Contact.Validate(),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the ordering user, or nil for a guest checkout.
func (c CreateOrderCommand) UserID() *kernel.UUID {
	return c.userID
}

func (c CreateOrderCommand) ClientType() order.ClientType {
	return c.clientType
}

func (c CreateOrderCommand) Checkout() order.Checkout {
	return c.checkout
}

// Items returns the explicitly requested items.
func (c CreateOrderCommand) Items() []ports.CartItem {
	return c.items
}

func (c *CreateOrderCommand) setUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	id := *userID
	c.userID = &id
	return nil
}

func (c *CreateOrderCommand) setClientType(clientType order.ClientType) error {
	if err := clientType.Validate(); err != nil {
		return err
	}
	c.clientType = clientType
	return nil
}

func (c *CreateOrderCommand) setItems(items []ports.CartItem) error {
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if item.ProductID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%d is not greater than 0", item.ProductID))
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		if item.Price.Valid && item.Price.Decimal.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", item.Price.Decimal))
		}
		if _, dup := seen[item.ProductID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("product %d is listed twice", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}
	c.items = append([]ports.CartItem(nil), items...)
	return nil
}
