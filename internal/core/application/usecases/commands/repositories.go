// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit event dispatch.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually uses.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to catalog reads within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// StockLedgerFactory provides access to stock mutations within a transaction.
	StockLedgerFactory interface {
		StockLedger() ports.StockLedger
	}

	// CartRepoFactory provides access to user carts within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// RuleRepoFactory provides access to wholesale rules within a transaction.
	RuleRepoFactory interface {
		WholesaleRuleRepository() ports.WholesaleRuleRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// CheckoutUoW manages the checkout transaction: stock is decremented, the
	// order is written and the cart is cleared atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ok, err := uow.StockLedger().Decrement(ctx, productID, quantity)
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.CartRepository().Clear(ctx, userID)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		StockLedgerFactory
		CartRepoFactory
		RuleRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions that change an existing order together
	// with the stock it holds.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		StockLedgerFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions of the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
