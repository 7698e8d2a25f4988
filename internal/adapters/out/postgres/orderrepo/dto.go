// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items and status history live in their own tables and are loaded with the order.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number          string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index"`
	ClientType      string          `gorm:"type:varchar(16);not null"`
	Status          string          `gorm:"type:varchar(32);index;not null"`
	Contact         ContactDTO      `gorm:"embedded;embeddedPrefix:contact_"`
	Delivery        DeliveryDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	Payment         PaymentDTO      `gorm:"embedded;embeddedPrefix:payment_"`
	Comment         string          `gorm:"type:text"`
	CancelledReason string          `gorm:"type:text"`
	CancelledBy     string          `gorm:"type:varchar(32)"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ItemsCount      int             `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"index;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime:false"`

	Items   []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type ContactDTO struct {
	Name  string `gorm:"type:varchar(255)"`
	Phone string `gorm:"type:varchar(32)"`
	Email string `gorm:"type:varchar(255)"`
}

type DeliveryDTO struct {
	Method         string `gorm:"type:varchar(64)"`
	City           string `gorm:"type:varchar(128)"`
	Address        string `gorm:"type:varchar(255)"`
	Branch         string `gorm:"type:varchar(128)"`
	TrackingNumber string `gorm:"type:varchar(64)"`
}

type PaymentDTO struct {
	Method string `gorm:"type:varchar(64)"`
	Status string `gorm:"type:varchar(32)"`
}

// OrderItemDTO stores one order line. Position keeps the aggregate's item order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position    int             `gorm:"not null"`
	ProductID   int64           `gorm:"index;not null"`
	ProductCode string          `gorm:"type:varchar(64)"`
	ProductName string          `gorm:"type:varchar(255)"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsPromo     bool            `gorm:"not null;default:false"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO stores one history entry. Rows are only ever inserted.
type StatusHistoryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	Position     int        `gorm:"not null"`
	OldStatus    *string    `gorm:"type:varchar(32)"`
	NewStatus    string     `gorm:"type:varchar(32);not null"`
	ChangedBy    *uuid.UUID `gorm:"type:uuid"`
	ChangeSource string     `gorm:"type:varchar(32);not null"`
	Comment      string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime:false"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation,
// including items and history.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	dto := OrderDTO{
		ID:         id,
		Number:     o.Number(),
		UserID:     kernel.OptionalBytes(o.UserID()),
		ClientType: o.ClientType().String(),
		Status:     o.Status().String(),
		Contact: ContactDTO{
			Name:  o.Contact().Name,
			Phone: o.Contact().Phone,
			Email: o.Contact().Email,
		},
		Delivery: DeliveryDTO{
			Method:         o.Delivery().Method,
			City:           o.Delivery().City,
			Address:        o.Delivery().Address,
			Branch:         o.Delivery().Branch,
			TrackingNumber: o.Delivery().TrackingNumber,
		},
		Payment: PaymentDTO{
			Method: o.Payment().Method,
			Status: string(o.Payment().Status),
		},
		Comment:         o.Comment(),
		CancelledReason: o.CancelledReason(),
		CancelledBy:     o.CancelledBy().String(),
		TotalAmount:     o.TotalAmount(),
		ItemsCount:      o.ItemsCount(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     id,
			Position:    i,
			ProductID:   item.ProductID(),
			ProductCode: item.ProductCode(),
			ProductName: item.ProductName(),
			Price:       item.Price(),
			Quantity:    item.Quantity(),
			Subtotal:    item.Subtotal(),
			IsPromo:     item.IsPromo(),
		})
	}

	for i, h := range o.History() {
		var oldStatus *string
		if h.OldStatus() != order.Unknown {
			s := h.OldStatus().String()
			oldStatus = &s
		}
		dto.History = append(dto.History, StatusHistoryDTO{
			ID:           h.ID().Bytes(),
			OrderID:      id,
			Position:     i,
			OldStatus:    oldStatus,
			NewStatus:    h.NewStatus().String(),
			ChangedBy:    kernel.OptionalBytes(h.ChangedBy()),
			ChangeSource: h.Source().String(),
			Comment:      h.Comment(),
			CreatedAt:    h.CreatedAt(),
		})
	}

	return dto
}

// toDomain reconstructs the aggregate with RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.OptionalUUIDFromBytes(dto.UserID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		entry, err := historyToDomain(historyDTO)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		Number:     dto.Number,
		UserID:     userID,
		ClientType: order.ClientType(dto.ClientType),
		Status:     status,
		Contact: order.Contact{
			Name:  dto.Contact.Name,
			Phone: dto.Contact.Phone,
			Email: dto.Contact.Email,
		},
		Delivery: order.Delivery{
			Method:         dto.Delivery.Method,
			City:           dto.Delivery.City,
			Address:        dto.Delivery.Address,
			Branch:         dto.Delivery.Branch,
			TrackingNumber: dto.Delivery.TrackingNumber,
		},
		Payment: order.Payment{
			Method: dto.Payment.Method,
			Status: order.PaymentStatus(dto.Payment.Status),
		},
		Comment:         dto.Comment,
		CancelledReason: dto.CancelledReason,
		CancelledBy:     order.ChangeSource(dto.CancelledBy),
		Items:           items,
		History:         history,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, order.Line{
		ProductID:   dto.ProductID,
		ProductCode: dto.ProductCode,
		ProductName: dto.ProductName,
		Price:       dto.Price,
		Quantity:    dto.Quantity,
		IsPromo:     dto.IsPromo,
	})
}

func historyToDomain(dto StatusHistoryDTO) (order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}
	oldStatus := order.Unknown
	if dto.OldStatus != nil {
		if oldStatus, err = order.ParseStatus(*dto.OldStatus); err != nil {
			return order.HistoryEntry{}, err
		}
	}
	newStatus, err := order.ParseStatus(dto.NewStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	changedBy, err := kernel.OptionalUUIDFromBytes(dto.ChangedBy)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	return order.RestoreHistoryEntry(id, oldStatus, newStatus, changedBy,
		order.ChangeSource(dto.ChangeSource), dto.Comment, dto.CreatedAt)
}
