package queries

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewGetUserOrdersQuery or NewGetAllOrdersQuery constructor",
	)
)

// ListFilter narrows a list query. Zero values mean "no filter", except Page
// and PageSize which default to 1 and DefaultPageSize.
type ListFilter struct {
	Statuses []order.Status
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// ListOrdersQuery pages through orders, newest first, optionally restricted
// to one user.
type ListOrdersQuery struct {
	userID   *kernel.UUID
	statuses []order.Status
	from     *time.Time
	to       *time.Time
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery lists the orders of one user.
func NewGetUserOrdersQuery(userID kernel.UUID, filter ListFilter) (ListOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return newListOrdersQuery(&userID, filter)
}

// NewGetAllOrdersQuery lists orders of every user and guest.
func NewGetAllOrdersQuery(filter ListFilter) (ListOrdersQuery, error) {
	return newListOrdersQuery(nil, filter)
}

func newListOrdersQuery(userID *kernel.UUID, filter ListFilter) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		userID:   userID,
		page:     1,
		pageSize: DefaultPageSize,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setStatuses(filter.Statuses),
		q.setRange(filter.From, filter.To),
		q.setPage(filter.Page),
		q.setPageSize(filter.PageSize),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through a constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) UserID() *kernel.UUID { return q.userID }
func (q ListOrdersQuery) Statuses() []order.Status { return q.statuses }
func (q ListOrdersQuery) From() *time.Time { return q.from }
func (q ListOrdersQuery) To() *time.Time { return q.to }
func (q ListOrdersQuery) Page() int { return q.page }
func (q ListOrdersQuery) PageSize() int { return q.pageSize }

// Offset is the number of rows skipped before the current page.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.pageSize
}

func (q *ListOrdersQuery) setStatuses(statuses []order.Status) error {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	q.statuses = append([]order.Status(nil), statuses...)
	return nil
}

func (q *ListOrdersQuery) setRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return errs.NewValueIsInvalidErrorWithCause("date range", fmt.Errorf("to %s is before from %s",
			to.Format(time.RFC3339), from.Format(time.RFC3339)))
	}
	q.from = from
	q.to = to
	return nil
}

func (q *ListOrdersQuery) setPage(page int) error {
	if page == 0 {
		return nil
	}
	if page < 0 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	q.page = page
	return nil
}

func (q *ListOrdersQuery) setPageSize(pageSize int) error {
	if pageSize == 0 {
		return nil
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}
	q.pageSize = pageSize
	return nil
}
