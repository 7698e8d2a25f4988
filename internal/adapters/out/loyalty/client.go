// Package loyalty accrues and revokes loyalty points through the loyalty service.
package loyalty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/resilience"
)

type accrueRequest struct {
	UserID      string `json:"userId"`
	OrderNumber string `json:"orderNumber"`
	Amount      string `json:"amount"`
}

type revokeRequest struct {
	UserID      string `json:"userId"`
	OrderNumber string `json:"orderNumber"`
}

// Client is a ports.LoyaltyService backed by the loyalty service HTTP API.
// The loyalty service deduplicates by order number.
type Client struct {
	http    *resty.Client
	breaker *resilience.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetRetryCount(0),
		breaker: resilience.NewCircuitBreaker("loyalty", resilience.BreakerSettings{}, logger),
	}
}

// Accrue credits points for a completed order.
func (c *Client) Accrue(ctx context.Context, userID kernel.UUID, orderNumber string, amount decimal.Decimal) error {
	return c.post(ctx, "/api/v1/loyalty/accruals", accrueRequest{
		UserID:      userID.String(),
		OrderNumber: orderNumber,
		Amount:      kernel.FormatMoney(amount),
	})
}

// Revoke withdraws the points of a returned order.
func (c *Client) Revoke(ctx context.Context, userID kernel.UUID, orderNumber string) error {
	return c.post(ctx, "/api/v1/loyalty/revocations", revokeRequest{
		UserID:      userID.String(),
		OrderNumber: orderNumber,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	return c.breaker.Call(func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			Post(path)
		if err != nil {
			return fmt.Errorf("loyalty request: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("loyalty service returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})
}

// Noop ignores loyalty operations. It is used when no loyalty service is configured.
type Noop struct{}

func (Noop) Accrue(context.Context, kernel.UUID, string, decimal.Decimal) error { return nil }

func (Noop) Revoke(context.Context, kernel.UUID, string) error { return nil }
