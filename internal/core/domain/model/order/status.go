package order

import (
	"fmt"
	"slices"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	new_order ─> processing ─> confirmed ─┬─> paid ─┬─> shipped ─┬─> completed ─> returned
//	    │            │             │      └─────────┘     │      └─────────────> returned
//	    └────────────┴─────────────┴──────────┴─> cancelled
//
// cancelled and returned are terminal.
type Status int

const (
	// Unknown is the zero value and never a valid state. History rows use it
	// as the "no previous status" marker of the creation entry.
	Unknown Status = iota
	StatusNewOrder
	Processing
	Confirmed
	Paid
	Shipped
	Completed
	Cancelled
	Returned
)

var statusNames = map[Status]string{
	Unknown:        "unknown",
	StatusNewOrder: "new_order",
	Processing:     "processing",
	Confirmed:      "confirmed",
	Paid:           "paid",
	Shipped:        "shipped",
	Completed:      "completed",
	Cancelled:      "cancelled",
	Returned:       "returned",
}

// transitions lists, for every valid status, the statuses it may move to.
// A pair absent from this table is an invalid transition for every actor.
var transitions = map[Status][]Status{
	StatusNewOrder: {Processing, Cancelled},
	Processing:     {Confirmed, Cancelled},
	Confirmed:      {Paid, Shipped, Cancelled},
	Paid:           {Shipped, Cancelled},
	Shipped:        {Completed, Returned},
	Completed:      {Returned},
	Cancelled:      {},
	Returned:       {},
}

var (
	editableStatuses          = []Status{StatusNewOrder, Processing, Confirmed}
	clientCancellableStatuses = []Status{StatusNewOrder, Processing}
)

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusNewOrder, Processing, Confirmed, Paid, Shipped, Completed, Cancelled, Returned}
}

// EditableStatuses returns the statuses in which order items may be changed.
func EditableStatuses() []Status {
	return slices.Clone(editableStatuses)
}

// ClientCancellableStatuses returns the statuses from which a client may cancel its own order.
func ClientCancellableStatuses() []Status {
	return slices.Clone(clientCancellableStatuses)
}

// ParseStatus maps the persisted/wire name onto a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// RestoresStock reports whether entering s returns the order's units to stock.
func (s Status) RestoresStock() bool {
	return s == Cancelled || s == Returned
}

func (s Status) IsEditable() bool {
	return slices.Contains(editableStatuses, s)
}

func (s Status) isClientCancellable() bool {
	return slices.Contains(clientCancellableStatuses, s)
}
