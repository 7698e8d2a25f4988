// Package dispatch runs the side effects of committed order changes in the
// background: manager and client notifications and loyalty points.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/metrics"
)

// DefaultTimeout bounds the side effects of one event.
const DefaultTimeout = 10 * time.Second

// AsyncDispatcher implements ports.EventDispatcher. Each event is handled on
// its own goroutine with a context detached from the request; failures and
// panics are logged and counted, never returned.
type AsyncDispatcher struct {
	notifier ports.Notifier
	loyalty  ports.LoyaltyService
	timeout  time.Duration
	logger   *slog.Logger
	inFlight sync.WaitGroup
}

func NewAsyncDispatcher(notifier ports.Notifier, loyalty ports.LoyaltyService, timeout time.Duration, logger *slog.Logger) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AsyncDispatcher{
		notifier: notifier,
		loyalty:  loyalty,
		timeout:  timeout,
		logger:   logger.With("component", "event_dispatcher"),
	}
}

// Dispatch returns immediately.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, events ...order.DomainEvent) {
	detached := context.WithoutCancel(ctx)
	for _, event := range events {
		d.inFlight.Add(1)
		go func() {
			defer d.inFlight.Done()
			d.handle(detached, event)
		}()
	}
}

// Wait blocks until every dispatched event has been handled or ctx ends.
func (d *AsyncDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inFlight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) handle(ctx context.Context, event order.DomainEvent) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	logger := d.logger.With("event", event.EventType(), "order_id", event.AggregateID().String())

	var g errgroup.Group
	for _, effect := range d.effects(event) {
		g.Go(func() error {
			d.run(ctx, logger, effect)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *AsyncDispatcher) run(ctx context.Context, logger *slog.Logger, effect sideEffect) {
	defer func() {
		if r := recover(); r != nil {
			metrics.SideEffectFailures.WithLabelValues(effect.kind).Inc()
			logger.ErrorContext(ctx, "side effect panicked", "kind", effect.kind, "panic", fmt.Sprint(r))
		}
	}()

	if err := effect.run(ctx); err != nil {
		metrics.SideEffectFailures.WithLabelValues(effect.kind).Inc()
		logger.ErrorContext(ctx, "side effect failed", "kind", effect.kind, "error", err)
		return
	}
	logger.DebugContext(ctx, "side effect done", "kind", effect.kind)
}

type sideEffect struct {
	kind string
	run  func(ctx context.Context) error
}

func (d *AsyncDispatcher) effects(event order.DomainEvent) []sideEffect {
	switch e := event.(type) {
	case order.CreatedEvent:
		return []sideEffect{{
			kind: "manager_notification",
			run: func(ctx context.Context) error {
				return d.notifier.NotifyManagerNewOrder(ctx, ports.NewOrderSummary{
					OrderID:      e.OrderID,
					Number:       e.Number,
					ClientType:   e.ClientType,
					ContactName:  e.ContactName,
					ContactPhone: e.ContactPhone,
					TotalAmount:  e.TotalAmount,
					ItemsCount:   e.ItemsCount,
				})
			},
		}}
	case order.StatusChangedEvent:
		return d.statusEffects(e)
	default:
		return nil
	}
}

// statusEffects only concern orders with an owner; guest orders have nobody
// to notify and no loyalty account.
func (d *AsyncDispatcher) statusEffects(e order.StatusChangedEvent) []sideEffect {
	if e.UserID == nil {
		return nil
	}
	userID := *e.UserID

	effects := []sideEffect{{
		kind: "client_notification",
		run: func(ctx context.Context) error {
			return d.notifier.NotifyClientStatusChange(ctx, ports.StatusNotification{
				UserID:         userID,
				OrderNumber:    e.Number,
				OldStatus:      e.OldStatus,
				NewStatus:      e.NewStatus,
				TrackingNumber: e.TrackingNumber,
			})
		},
	}}

	switch e.NewStatus {
	case order.Completed:
		effects = append(effects, sideEffect{
			kind: "loyalty_accrual",
			run: func(ctx context.Context) error {
				return d.loyalty.Accrue(ctx, userID, e.Number, e.TotalAmount)
			},
		})
	case order.Returned:
		effects = append(effects, sideEffect{
			kind: "loyalty_revocation",
			run: func(ctx context.Context) error {
				return d.loyalty.Revoke(ctx, userID, e.Number)
			},
		})
	}
	return effects
}
