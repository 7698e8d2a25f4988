package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrOrder is the sentinel wrapped by every OrderError.
var ErrOrder = errors.New("order error")

// Code discriminates OrderError values. Each code has a fixed HTTP status.
type Code string

const (
	CodeEmptyCart         Code = "EMPTY_CART"
	CodeRuleViolation     Code = "RULE_VIOLATION"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
)

// OrderError is the single error kind surfaced by order operations.
// Message is meant to be shown to the caller verbatim and StatusCode maps
// directly onto the HTTP response status.
type OrderError struct {
	Code       Code
	Message    string
	StatusCode int
}

func newOrderError(code Code, status int, message string) *OrderError {
	return &OrderError{Code: code, Message: message, StatusCode: status}
}

func NewEmptyCartError() *OrderError {
	return newOrderError(CodeEmptyCart, http.StatusBadRequest, "cart is empty")
}

func NewRuleViolationError(message string) *OrderError {
	return newOrderError(CodeRuleViolation, http.StatusBadRequest, message)
}

func NewInsufficientStockError(productID int64, productName string) *OrderError {
	if productName == "" {
		return newOrderError(CodeInsufficientStock, http.StatusBadRequest,
			fmt.Sprintf("insufficient stock for product %d", productID))
	}
	return newOrderError(CodeInsufficientStock, http.StatusBadRequest,
		fmt.Sprintf("insufficient stock for product %d (%s)", productID, productName))
}

func NewInvalidTransitionError(from, to fmt.Stringer) *OrderError {
	return newOrderError(CodeInvalidTransition, http.StatusBadRequest,
		fmt.Sprintf("cannot change order status from %s to %s", from, to))
}

func NewInvalidStateError[S fmt.Stringer](current S, allowed []S) *OrderError {
	return newOrderError(CodeInvalidState, http.StatusBadRequest,
		fmt.Sprintf("order in status %s cannot be edited, allowed statuses: %s", current, join(allowed)))
}

func NewForbiddenError[S fmt.Stringer](allowedFrom []S) *OrderError {
	return newOrderError(CodeForbidden, http.StatusForbidden,
		fmt.Sprintf("client can only cancel orders in statuses: %s", join(allowedFrom)))
}

func NewNotFoundError(what string, id any) *OrderError {
	return newOrderError(CodeNotFound, http.StatusNotFound, fmt.Sprintf("%s %v not found", what, id))
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OrderError) Unwrap() error {
	return ErrOrder
}

// HasCode reports whether err is an OrderError carrying code.
func HasCode(err error, code Code) bool {
	var oe *OrderError
	return errors.As(err, &oe) && oe.Code == code
}

func join[S fmt.Stringer](items []S) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, ", ")
}
