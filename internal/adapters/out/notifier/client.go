// Package notifier sends order notifications through the notification service.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/resilience"
)

const (
	managerNewOrderPath     = "/api/v1/notifications/manager/new-order"
	clientStatusChangedPath = "/api/v1/notifications/client/status-changed"
)

type newOrderRequest struct {
	OrderID      string `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	ClientType   string `json:"clientType"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	TotalAmount  string `json:"totalAmount"`
	ItemsCount   int    `json:"itemsCount"`
}

type statusChangedRequest struct {
	UserID         string `json:"userId"`
	OrderNumber    string `json:"orderNumber"`
	OldStatus      string `json:"oldStatus"`
	NewStatus      string `json:"newStatus"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// Client is a ports.Notifier backed by the notification service HTTP API.
type Client struct {
	http    *resty.Client
	breaker *resilience.CircuitBreaker
}

// NewClient creates a notifier for baseURL. Which channel reaches the
// recipient is decided by the notification service.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetRetryCount(0),
		breaker: resilience.NewCircuitBreaker("notifier", resilience.BreakerSettings{}, logger),
	}
}

func (c *Client) NotifyManagerNewOrder(ctx context.Context, summary ports.NewOrderSummary) error {
	return c.post(ctx, managerNewOrderPath, newOrderRequest{
		OrderID:      summary.OrderID.String(),
		OrderNumber:  summary.Number,
		ClientType:   summary.ClientType.String(),
		ContactName:  summary.ContactName,
		ContactPhone: summary.ContactPhone,
		TotalAmount:  kernel.FormatMoney(summary.TotalAmount),
		ItemsCount:   summary.ItemsCount,
	})
}

func (c *Client) NotifyClientStatusChange(ctx context.Context, n ports.StatusNotification) error {
	return c.post(ctx, clientStatusChangedPath, statusChangedRequest{
		UserID:         n.UserID.String(),
		OrderNumber:    n.OrderNumber,
		OldStatus:      n.OldStatus.String(),
		NewStatus:      n.NewStatus.String(),
		TrackingNumber: n.TrackingNumber,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	return c.breaker.Call(func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			Post(path)
		if err != nil {
			return fmt.Errorf("notification request: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("notification service returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})
}

// Noop discards notifications. It is used when no notification service is configured.
type Noop struct{}

func (Noop) NotifyManagerNewOrder(context.Context, ports.NewOrderSummary) error { return nil }

func (Noop) NotifyClientStatusChange(context.Context, ports.StatusNotification) error { return nil }
