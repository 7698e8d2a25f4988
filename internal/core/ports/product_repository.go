package ports

import (
	"context"

	"ordering/internal/core/domain/model/product"
)

// ProductRepository reads catalog products.
type ProductRepository interface {
	// Get returns errs.ObjectNotFoundError for unknown or inactive products.
	Get(ctx context.Context, id int64) (product.Product, error)
}

// StockLedger mutates product stock with single atomic statements. Callers
// never read the quantity first.
type StockLedger interface {
	// Decrement subtracts quantity only if at least that much is available.
	// ok is false when stock was insufficient; nothing is changed then.
	Decrement(ctx context.Context, productID int64, quantity int) (ok bool, err error)

	// Increment adds quantity back unconditionally.
	Increment(ctx context.Context, productID int64, quantity int) error
}
