package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderByIDQuery or NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderQuery fetches one order with its items and history, either by id or
// by its human-readable number.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery("20240315-000042")
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	id     *kernel.UUID
	number string

	guard guard.ConstructorGuard
}

func NewGetOrderByIDQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: &id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByNumberQuery(number string) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order number")
	}
	return GetOrderQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// ID returns the looked up id, or nil for a lookup by number.
func (q GetOrderQuery) ID() *kernel.UUID {
	return q.id
}

func (q GetOrderQuery) Number() string {
	return q.number
}
