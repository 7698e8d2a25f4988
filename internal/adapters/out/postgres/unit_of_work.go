// Package postgres provides the GORM-based Unit of Work and schema migration
// for the ordering module.
//
// A unit of work wraps one database transaction. Repositories handed out
// after Begin are bound to that transaction, so stock decrements, order
// writes and cart clearing commit or roll back together. Aggregates saved
// through the order repository are tracked; on Commit their pending domain
// events are written to the outbox inside the same transaction.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	ok, err := uow.StockLedger().Decrement(ctx, productID, quantity)
//	...
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// changes nothing, which makes the deferred call above safe.
//
// Each UnitOfWork instance is single-use per goroutine; concurrent operations
// create their own instances through the factory.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/productrepo"
	"ordering/internal/adapters/out/postgres/rulerepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that raise domain events.
type eventSource interface {
	DomainEvents() []order.DomainEvent
}

// GormUnitOfWorkFactory creates GormUnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	topic string
}

// NewGormUnitOfWorkFactory creates a factory. Outbox messages are addressed to topic.
func NewGormUnitOfWorkFactory(db *gorm.DB, topic string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, topic: topic}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		topic:             f.topic,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	topic             string
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit writes the outbox messages of tracked aggregates and commits. The
// transaction is rolled back if the outbox write fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushOutbox(ctx); err != nil {
		uow.tx.Rollback()
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) StockLedger() ports.StockLedger {
	return productrepo.NewGormStockLedger(uow.conn())
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

func (uow *GormUnitOfWork) WholesaleRuleRepository() ports.WholesaleRuleRepository {
	return rulerepo.NewGormRuleRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate records an aggregate saved in this unit of work. Saving the
// same aggregate twice keeps one entry.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushOutbox(ctx context.Context) error {
	var messages []ports.OutboxMessage
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		for _, event := range source.DomainEvents() {
			m, err := outboxrepo.NewMessage(event, uow.topic)
			if err != nil {
				return err
			}
			messages = append(messages, m)
		}
	}
	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
}
