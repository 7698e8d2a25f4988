// Package queries contains read-only operations over orders.
// Handlers read straight from the database and return flat views; they never
// load aggregates and never take locks.
package queries

import (
	"time"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderView is the full read model of an order.
type OrderView struct {
	ID              kernel.UUID
	Number          string
	UserID          *kernel.UUID
	ClientType      order.ClientType
	Status          order.Status
	Contact         order.Contact
	Delivery        order.Delivery
	Payment         order.Payment
	Comment         string
	CancelledReason string
	CancelledBy     order.ChangeSource
	TotalAmount     decimal.Decimal
	ItemsCount      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItemView
	History         []StatusHistoryView
}

type OrderItemView struct {
	ID          kernel.UUID
	ProductID   int64
	ProductCode string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
	IsPromo     bool
}

// StatusHistoryView is one history row. OldStatus is order.Unknown for the
// creation entry.
type StatusHistoryView struct {
	OldStatus order.Status
	NewStatus order.Status
	ChangedBy *kernel.UUID
	Source    order.ChangeSource
	Comment   string
	CreatedAt time.Time
}

// OrderSummaryView is a list row.
type OrderSummaryView struct {
	ID          kernel.UUID
	Number      string
	UserID      *kernel.UUID
	ClientType  order.ClientType
	Status      order.Status
	ContactName string
	TotalAmount decimal.Decimal
	ItemsCount  int
	CreatedAt   time.Time
}

// OrderPage is one page of a list query, newest orders first.
type OrderPage struct {
	Orders     []OrderSummaryView
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// NewOrderView renders an aggregate as a view, so command results and query
// results share one shape.
func NewOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:              o.ID(),
		Number:          o.Number(),
		UserID:          o.UserID(),
		ClientType:      o.ClientType(),
		Status:          o.Status(),
		Contact:         o.Contact(),
		Delivery:        o.Delivery(),
		Payment:         o.Payment(),
		Comment:         o.Comment(),
		CancelledReason: o.CancelledReason(),
		CancelledBy:     o.CancelledBy(),
		TotalAmount:     o.TotalAmount(),
		ItemsCount:      o.ItemsCount(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Items:           make([]OrderItemView, 0, len(o.Items())),
		History:         make([]StatusHistoryView, 0, len(o.History())),
	}
	for _, item := range o.Items() {
		view.Items = append(view.Items, OrderItemView{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductCode: item.ProductCode(),
			ProductName: item.ProductName(),
			Price:       item.Price(),
			Quantity:    item.Quantity(),
			Subtotal:    item.Subtotal(),
			IsPromo:     item.IsPromo(),
		})
	}
	for _, h := range o.History() {
		view.History = append(view.History, StatusHistoryView{
			OldStatus: h.OldStatus(),
			NewStatus: h.NewStatus(),
			ChangedBy: h.ChangedBy(),
			Source:    h.Source(),
			Comment:   h.Comment(),
			CreatedAt: h.CreatedAt(),
		})
	}
	return view
}
