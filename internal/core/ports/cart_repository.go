package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
)

// CartItem is a product placed in a user's cart.
//
// Price is the unit price the storefront resolved for the buyer's client type
// (retail or wholesale). When it is not set, checkout falls back to the
// catalog retail price. Code and name fall back to the catalog the same way.
type CartItem struct {
	ProductID   int64
	ProductCode string
	ProductName string
	Price       decimal.NullDecimal
	Quantity    int
	IsPromo     bool
}

// CartRepository gives checkout access to a registered user's cart.
type CartRepository interface {
	Items(ctx context.Context, userID kernel.UUID) ([]CartItem, error)
	Clear(ctx context.Context, userID kernel.UUID) error
}
