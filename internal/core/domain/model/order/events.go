package order

import (
	"time"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
)

// Event type names, used as outbox message types.
const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
	EventItemsEdited   = "order.items_edited"
)

// DomainEvent is a fact raised by the Order aggregate. Events are persisted to
// the outbox in the same transaction as the order and dispatched after commit.
type DomainEvent interface {
	EventType() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

type CreatedEvent struct {
	OrderID      kernel.UUID     `json:"orderId"`
	Number       string          `json:"orderNumber"`
	UserID       *kernel.UUID    `json:"userId,omitempty"`
	ClientType   ClientType      `json:"clientType"`
	ContactName  string          `json:"contactName"`
	ContactPhone string          `json:"contactPhone"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ItemsCount   int             `json:"itemsCount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (e CreatedEvent) EventType() string { return EventCreated }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

type StatusChangedEvent struct {
	OrderID        kernel.UUID     `json:"orderId"`
	Number         string          `json:"orderNumber"`
	UserID         *kernel.UUID    `json:"userId,omitempty"`
	OldStatus      Status          `json:"oldStatus"`
	NewStatus      Status          `json:"newStatus"`
	Source         ChangeSource    `json:"source"`
	ChangedBy      *kernel.UUID    `json:"changedBy,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ChangedAt      time.Time       `json:"changedAt"`
}

func (e StatusChangedEvent) EventType() string { return EventStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

type ItemsEditedEvent struct {
	OrderID     kernel.UUID     `json:"orderId"`
	Number      string          `json:"orderNumber"`
	UserID      *kernel.UUID    `json:"userId,omitempty"`
	EditedBy    *kernel.UUID    `json:"editedBy,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemsCount  int             `json:"itemsCount"`
	EditedAt    time.Time       `json:"editedAt"`
}

func (e ItemsEditedEvent) EventType() string { return EventItemsEdited }
func (e ItemsEditedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e ItemsEditedEvent) OccurredAt() time.Time { return e.EditedAt }
