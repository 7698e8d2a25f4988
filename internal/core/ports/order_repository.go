// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, stock bookkeeping, messaging and collaborators.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items and history are stored and loaded together with the order.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order: scalar fields, the current
	// item set and any new history entries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with items and history.
	// Returns errs.ObjectNotFoundError when no order has the given id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends. Concurrent transitions of one order queue up here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// NextNumberSequence returns the next value for building an order number.
	NextNumberSequence(ctx context.Context) (int64, error)
}
