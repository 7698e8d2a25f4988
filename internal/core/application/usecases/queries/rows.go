package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// Scan targets for the orders, order_items and order_status_history tables.

type orderRow struct {
	ID                     uuid.UUID
	Number                 string
	UserID                 *uuid.UUID
	ClientType             string
	Status                 string
	ContactName            string
	ContactPhone           string
	ContactEmail           string
	DeliveryMethod         string
	DeliveryCity           string
	DeliveryAddress        string
	DeliveryBranch         string
	DeliveryTrackingNumber string
	PaymentMethod          string
	PaymentStatus          string
	Comment                string
	CancelledReason        string
	CancelledBy            string
	TotalAmount            decimal.Decimal
	ItemsCount             int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type itemRow struct {
	ID          uuid.UUID
	ProductID   int64
	ProductCode string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
	IsPromo     bool
}

type historyRow struct {
	OldStatus    *string
	NewStatus    string
	ChangedBy    *uuid.UUID
	ChangeSource string
	Comment      string
	CreatedAt    time.Time
}

func (r orderRow) view() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	userID, err := kernel.OptionalUUIDFromBytes(r.UserID)
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:         id,
		Number:     r.Number,
		UserID:     userID,
		ClientType: order.ClientType(r.ClientType),
		Status:     status,
		Contact: order.Contact{
			Name:  r.ContactName,
			Phone: r.ContactPhone,
			Email: r.ContactEmail,
		},
		Delivery: order.Delivery{
			Method:         r.DeliveryMethod,
			City:           r.DeliveryCity,
			Address:        r.DeliveryAddress,
			Branch:         r.DeliveryBranch,
			TrackingNumber: r.DeliveryTrackingNumber,
		},
		Payment: order.Payment{
			Method: r.PaymentMethod,
			Status: order.PaymentStatus(r.PaymentStatus),
		},
		Comment:         r.Comment,
		CancelledReason: r.CancelledReason,
		CancelledBy:     order.ChangeSource(r.CancelledBy),
		TotalAmount:     r.TotalAmount,
		ItemsCount:      r.ItemsCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}

func (r orderRow) summary() (OrderSummaryView, error) {
	v, err := r.view()
	if err != nil {
		return OrderSummaryView{}, err
	}
	return OrderSummaryView{
		ID:          v.ID,
		Number:      v.Number,
		UserID:      v.UserID,
		ClientType:  v.ClientType,
		Status:      v.Status,
		ContactName: v.Contact.Name,
		TotalAmount: v.TotalAmount,
		ItemsCount:  v.ItemsCount,
		CreatedAt:   v.CreatedAt,
	}, nil
}

func (r itemRow) view() (OrderItemView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderItemView{}, err
	}
	return OrderItemView{
		ID:          id,
		ProductID:   r.ProductID,
		ProductCode: r.ProductCode,
		ProductName: r.ProductName,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Subtotal:    r.Subtotal,
		IsPromo:     r.IsPromo,
	}, nil
}

func (r historyRow) view() (StatusHistoryView, error) {
	oldStatus := order.Unknown
	if r.OldStatus != nil {
		s, err := order.ParseStatus(*r.OldStatus)
		if err != nil {
			return StatusHistoryView{}, err
		}
		oldStatus = s
	}
	newStatus, err := order.ParseStatus(r.NewStatus)
	if err != nil {
		return StatusHistoryView{}, err
	}
	changedBy, err := kernel.OptionalUUIDFromBytes(r.ChangedBy)
	if err != nil {
		return StatusHistoryView{}, err
	}
	return StatusHistoryView{
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Source:    order.ChangeSource(r.ChangeSource),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}, nil
}
