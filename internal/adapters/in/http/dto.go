package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ContactBody struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type DeliveryBody struct {
	Method         string `json:"method,omitempty"`
	City           string `json:"city,omitempty"`
	Address        string `json:"address,omitempty"`
	Branch         string `json:"branch,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// CartItemBody is a guest cart line. Price is the unit price already resolved
// for the client type; when absent the catalog retail price applies.
type CartItemBody struct {
	ProductID   int64               `json:"productId"`
	ProductCode string              `json:"productCode"`
	ProductName string              `json:"productName"`
	Price       decimal.NullDecimal `json:"price"`
	Quantity    int                 `json:"quantity"`
	IsPromo     bool                `json:"isPromo"`
}

type CheckoutRequest struct {
	ClientType    string         `json:"clientType"`
	Contact       ContactBody    `json:"contact"`
	Delivery      DeliveryBody   `json:"delivery"`
	PaymentMethod string         `json:"paymentMethod"`
	Comment       string         `json:"comment"`
	Items         []CartItemBody `json:"items"`
}

func (r CheckoutRequest) checkout() order.Checkout {
	return order.Checkout{
		Contact: order.Contact{
			Name:  r.Contact.Name,
			Phone: r.Contact.Phone,
			Email: r.Contact.Email,
		},
		Delivery: order.Delivery{
			Method:  r.Delivery.Method,
			City:    r.Delivery.City,
			Address: r.Delivery.Address,
			Branch:  r.Delivery.Branch,
		},
		PaymentMethod: r.PaymentMethod,
		Comment:       r.Comment,
	}
}

func (r CheckoutRequest) cartItems() []ports.CartItem {
	if len(r.Items) == 0 {
		return nil
	}
	items := make([]ports.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ports.CartItem{
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			IsPromo:     it.IsPromo,
		})
	}
	return items
}

type StatusChangeRequest struct {
	Status         string `json:"status"`
	Comment        string `json:"comment"`
	TrackingNumber string `json:"trackingNumber"`
}

type ItemChangeBody struct {
	ProductID int64               `json:"productId"`
	Quantity  int                 `json:"quantity"`
	Remove    bool                `json:"remove"`
	Price     decimal.NullDecimal `json:"price"`
}

type EditItemsRequest struct {
	Changes []ItemChangeBody `json:"changes"`
}

func (r EditItemsRequest) itemChanges() []commands.ItemChange {
	changes := make([]commands.ItemChange, 0, len(r.Changes))
	for _, c := range r.Changes {
		changes = append(changes, commands.ItemChange{ProductID: c.ProductID, Quantity: c.Quantity, Remove: c.Remove, Price: c.Price})
	}
	return changes
}

type PaymentBody struct {
	Method string `json:"method"`
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   int64     `json:"productId"`
	ProductCode string    `json:"productCode"`
	ProductName string    `json:"productName"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
	IsPromo     bool      `json:"isPromo"`
}

type StatusHistoryResponse struct {
	OldStatus    *string    `json:"oldStatus"`
	NewStatus    string     `json:"newStatus"`
	ChangedBy    *uuid.UUID `json:"changedBy"`
	ChangeSource string     `json:"changeSource"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	Number          string                  `json:"number"`
	UserID          *uuid.UUID              `json:"userId"`
	ClientType      string                  `json:"clientType"`
	Status          string                  `json:"status"`
	Contact         ContactBody             `json:"contact"`
	Delivery        DeliveryBody            `json:"delivery"`
	Payment         PaymentBody             `json:"payment"`
	Comment         string                  `json:"comment,omitempty"`
	CancelledReason string                  `json:"cancelledReason,omitempty"`
	CancelledBy     string                  `json:"cancelledBy,omitempty"`
	TotalAmount     string                  `json:"totalAmount"`
	ItemsCount      int                     `json:"itemsCount"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	Items           []OrderItemResponse     `json:"items"`
	History         []StatusHistoryResponse `json:"history"`
}

type OrderSummaryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Number      string     `json:"number"`
	UserID      *uuid.UUID `json:"userId"`
	ClientType  string     `json:"clientType"`
	Status      string     `json:"status"`
	ContactName string     `json:"contactName"`
	TotalAmount string     `json:"totalAmount"`
	ItemsCount  int        `json:"itemsCount"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type OrderPageResponse struct {
	Orders     []OrderSummaryResponse `json:"orders"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"totalPages"`
}

func newOrderResponse(v queries.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:         v.ID.Bytes(),
		Number:     v.Number,
		UserID:     kernel.OptionalBytes(v.UserID),
		ClientType: v.ClientType.String(),
		Status:     v.Status.String(),
		Contact: ContactBody{
			Name:  v.Contact.Name,
			Phone: v.Contact.Phone,
			Email: v.Contact.Email,
		},
		Delivery: DeliveryBody{
			Method:         v.Delivery.Method,
			City:           v.Delivery.City,
			Address:        v.Delivery.Address,
			Branch:         v.Delivery.Branch,
			TrackingNumber: v.Delivery.TrackingNumber,
		},
		Payment: PaymentBody{
			Method: v.Payment.Method,
			Status: string(v.Payment.Status),
		},
		Comment:         v.Comment,
		CancelledReason: v.CancelledReason,
		CancelledBy:     v.CancelledBy.String(),
		TotalAmount:     kernel.FormatMoney(v.TotalAmount),
		ItemsCount:      v.ItemsCount,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		Items:           make([]OrderItemResponse, 0, len(v.Items)),
		History:         make([]StatusHistoryResponse, 0, len(v.History)),
	}

	for _, it := range v.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:          it.ID.Bytes(),
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Price:       kernel.FormatMoney(it.Price),
			Quantity:    it.Quantity,
			Subtotal:    kernel.FormatMoney(it.Subtotal),
			IsPromo:     it.IsPromo,
		})
	}

	for _, h := range v.History {
		var oldStatus *string
		if h.OldStatus != order.Unknown {
			s := h.OldStatus.String()
			oldStatus = &s
		}
		resp.History = append(resp.History, StatusHistoryResponse{
			OldStatus:    oldStatus,
			NewStatus:    h.NewStatus.String(),
			ChangedBy:    kernel.OptionalBytes(h.ChangedBy),
			ChangeSource: h.Source.String(),
			Comment:      h.Comment,
			CreatedAt:    h.CreatedAt,
		})
	}

	return resp
}

func newOrderPageResponse(p queries.OrderPage) OrderPageResponse {
	resp := OrderPageResponse{
		Orders:     make([]OrderSummaryResponse, 0, len(p.Orders)),
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
	}
	for _, o := range p.Orders {
		resp.Orders = append(resp.Orders, OrderSummaryResponse{
			ID:          o.ID.Bytes(),
			Number:      o.Number,
			UserID:      kernel.OptionalBytes(o.UserID),
			ClientType:  o.ClientType.String(),
			Status:      o.Status.String(),
			ContactName: o.ContactName,
			TotalAmount: kernel.FormatMoney(o.TotalAmount),
			ItemsCount:  o.ItemsCount,
			CreatedAt:   o.CreatedAt,
		})
	}
	return resp
}
