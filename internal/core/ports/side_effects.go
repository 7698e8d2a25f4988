package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// EventDispatcher runs post-commit side effects for domain events. Dispatch
// never blocks on the side effects and never reports their failures.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...order.DomainEvent)
}

// NewOrderSummary is what managers are told about a fresh order.
type NewOrderSummary struct {
	OrderID      kernel.UUID
	Number       string
	ClientType   order.ClientType
	ContactName  string
	ContactPhone string
	TotalAmount  decimal.Decimal
	ItemsCount   int
}

// StatusNotification is what a client is told about a status change.
type StatusNotification struct {
	UserID         kernel.UUID
	OrderNumber    string
	OldStatus      order.Status
	NewStatus      order.Status
	TrackingNumber string
}

// Notifier delivers order notifications. Channel selection is the notifier's concern.
type Notifier interface {
	NotifyManagerNewOrder(ctx context.Context, summary NewOrderSummary) error
	NotifyClientStatusChange(ctx context.Context, notification StatusNotification) error
}

// LoyaltyService accrues and revokes loyalty points for completed and returned orders.
type LoyaltyService interface {
	Accrue(ctx context.Context, userID kernel.UUID, orderNumber string, amount decimal.Decimal) error
	Revoke(ctx context.Context, userID kernel.UUID, orderNumber string) error
}
