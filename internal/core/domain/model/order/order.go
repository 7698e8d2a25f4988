package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering domain. It owns its items and its
// status history and keeps the derived totals consistent with the items.
//
// Order follows these invariants:
//   - totalAmount equals the sum of item subtotals
//   - itemsCount equals the sum of item quantities
//   - status changes follow the transition table; each one appends a history entry
//   - contact and delivery snapshots are fixed at checkout (tracking number aside)
type Order struct {
	id         kernel.UUID
	number     string
	userID     *kernel.UUID
	clientType ClientType
	status     Status

	contact  Contact
	delivery Delivery
	payment  Payment
	comment  string

	cancelledReason string
	cancelledBy     ChangeSource

	items   []*Item
	history []HistoryEntry

	totalAmount decimal.Decimal
	itemsCount  int

	createdAt time.Time
	updatedAt time.Time

	events []DomainEvent

	isConstructed bool
}

// NewOrder creates an order in new_order status from resolved lines.
//
// userID is nil for guest checkout. The creation is recorded as the first
// history entry and raises a CreatedEvent.
func NewOrder(
	id kernel.UUID,
	number string,
	userID *kernel.UUID,
	clientType ClientType,
	checkout Checkout,
	lines []Line,
	now time.Time,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, errs.NewEmptyCartError()
	}

	o := &Order{
		userID:        userID,
		status:        StatusNewOrder,
		contact:       checkout.Contact,
		delivery:      checkout.Delivery,
		payment:       Payment{Method: checkout.PaymentMethod, Status: PaymentPending},
		comment:       checkout.Comment,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setClientType(clientType),
		checkout.Contact.Validate(),
	); err != nil {
		return nil, err
	}

	for _, line := range lines {
		if err := o.addItem(line); err != nil {
			return nil, err
		}
	}
	o.recalculate()

	o.history = append(o.history, newHistoryEntry(Unknown, StatusNewOrder, userID, SourceSystem, CreatedComment, now))
	o.raise(CreatedEvent{
		OrderID:      o.id,
		Number:       o.number,
		UserID:       o.userID,
		ClientType:   o.clientType,
		ContactName:  o.contact.Name,
		ContactPhone: o.contact.Phone,
		TotalAmount:  o.totalAmount,
		ItemsCount:   o.itemsCount,
		CreatedAt:    now,
	})

	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID              kernel.UUID
	Number          string
	UserID          *kernel.UUID
	ClientType      ClientType
	Status          Status
	Contact         Contact
	Delivery        Delivery
	Payment         Payment
	Comment         string
	CancelledReason string
	CancelledBy     ChangeSource
	Items           []*Item
	History         []HistoryEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds an order from persistence. Totals are derived from the
// restored items; no events are raised.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		userID:          s.UserID,
		contact:         s.Contact,
		delivery:        s.Delivery,
		payment:         s.Payment,
		comment:         s.Comment,
		cancelledReason: s.CancelledReason,
		cancelledBy:     s.CancelledBy,
		items:           slices.Clone(s.Items),
		history:         slices.Clone(s.History),
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setClientType(s.ClientType),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	o.recalculate()
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// UserID returns the owning user, or nil for a guest order.
func (o *Order) UserID() *kernel.UUID {
	return o.userID
}

func (o *Order) ClientType() ClientType {
	return o.clientType
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Contact() Contact {
	return o.contact
}

func (o *Order) Delivery() Delivery {
	return o.delivery
}

func (o *Order) Payment() Payment {
	return o.payment
}

// Comment returns the customer's checkout comment.
func (o *Order) Comment() string {
	return o.comment
}

// CancelledReason returns the comment given on cancellation, if any.
func (o *Order) CancelledReason() string {
	return o.cancelledReason
}

// CancelledBy returns who cancelled the order, or an empty source.
func (o *Order) CancelledBy() ChangeSource {
	return o.cancelledBy
}

// Items returns the order lines in insertion order.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

// Lines returns the order lines as Line values.
func (o *Order) Lines() []Line {
	lines := make([]Line, 0, len(o.items))
	for _, item := range o.items {
		lines = append(lines, item.Line())
	}
	return lines
}

// History returns the status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) ItemsCount() int {
	return o.itemsCount
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// StatusChange describes a requested status transition.
type StatusChange struct {
	Target  Status
	Source  ChangeSource
	ActorID *kernel.UUID
	Comment string
	// TrackingNumber is applied only when moving to shipped.
	TrackingNumber string
}

// ChangeStatus moves the order to change.Target.
//
// This method enforces the following business rules:
//   - the (current, target) pair must be in the transition table, for every actor
//   - a client_action may only cancel, and only from new_order or processing
//   - cancellation records the reason and the source
//   - moving to paid marks the payment as paid
//
// It returns an INVALID_TRANSITION or FORBIDDEN OrderError on rejection and
// leaves the order untouched in that case.
func (o *Order) ChangeStatus(change StatusChange, now time.Time) error {
	if err := change.Source.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(change.Target) {
		return errs.NewInvalidTransitionError(o.status, change.Target)
	}

	if change.Source == SourceClientAction &&
		(change.Target != Cancelled || !o.status.isClientCancellable()) {
		return errs.NewForbiddenError(ClientCancellableStatuses())
	}

	oldStatus := o.status
	o.status = change.Target
	o.updatedAt = now

	switch change.Target {
	case Cancelled:
		o.cancelledReason = change.Comment
		o.cancelledBy = change.Source
	case Paid:
		o.payment.Status = PaymentPaid
	case Shipped:
		if change.TrackingNumber != "" {
			o.delivery.TrackingNumber = change.TrackingNumber
		}
	}

	o.history = append(o.history, newHistoryEntry(oldStatus, change.Target, change.ActorID, change.Source, change.Comment, now))
	o.raise(StatusChangedEvent{
		OrderID:        o.id,
		Number:         o.number,
		UserID:         o.userID,
		OldStatus:      oldStatus,
		NewStatus:      change.Target,
		Source:         change.Source,
		ChangedBy:      change.ActorID,
		Comment:        change.Comment,
		TrackingNumber: o.delivery.TrackingNumber,
		TotalAmount:    o.totalAmount,
		ChangedAt:      now,
	})
	return nil
}

// EnsureEditable returns an INVALID_STATE OrderError unless items may be changed
// in the current status.
func (o *Order) EnsureEditable() error {
	if !o.status.IsEditable() {
		return errs.NewInvalidStateError(o.status, EditableStatuses())
	}
	return nil
}

// Item returns the line for productID, if present.
func (o *Order) Item(productID int64) (*Item, bool) {
	i := o.indexOf(productID)
	if i < 0 {
		return nil, false
	}
	return o.items[i], true
}

// RemoveItem deletes the line for productID and returns it. Removing an absent
// product is a no-op reported by ok == false.
func (o *Order) RemoveItem(productID int64) (removed Line, ok bool, err error) {
	if err := o.EnsureEditable(); err != nil {
		return Line{}, false, err
	}

	i := o.indexOf(productID)
	if i < 0 {
		return Line{}, false, nil
	}

	removed = o.items[i].Line()
	o.items = slices.Delete(o.items, i, i+1)
	o.recalculate()
	return removed, true, nil
}

// ChangeItemQuantity sets a new quantity on an existing line and returns the
// signed difference (new - old). Price, code and name keep their snapshot values.
func (o *Order) ChangeItemQuantity(productID int64, quantity int) (delta int, err error) {
	if err := o.EnsureEditable(); err != nil {
		return 0, err
	}

	item, ok := o.Item(productID)
	if !ok {
		return 0, errs.NewNotFoundError("order item for product", productID)
	}

	old := item.Quantity()
	if err := item.resize(quantity); err != nil {
		return 0, err
	}
	o.recalculate()
	return quantity - old, nil
}

// AddItem appends a new line priced from the given snapshot.
func (o *Order) AddItem(line Line) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	if err := o.addItem(line); err != nil {
		return err
	}
	o.recalculate()
	return nil
}

// RecordItemsEdit recomputes the totals, appends a history entry for a
// completed edit and raises an ItemsEditedEvent. The status does not change.
func (o *Order) RecordItemsEdit(actorID *kernel.UUID, source ChangeSource, now time.Time) {
	o.recalculate()
	o.updatedAt = now
	o.history = append(o.history, newHistoryEntry(o.status, o.status, actorID, source, ItemsEditedComment, now))
	o.raise(ItemsEditedEvent{
		OrderID:     o.id,
		Number:      o.number,
		UserID:      o.userID,
		EditedBy:    actorID,
		TotalAmount: o.totalAmount,
		ItemsCount:  o.itemsCount,
		EditedAt:    now,
	})
}

// DomainEvents returns the events raised since the last PullDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	return slices.Clone(o.events)
}

// PullDomainEvents returns and clears the raised events.
func (o *Order) PullDomainEvents() []DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) raise(event DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) addItem(line Line) error {
	if o.indexOf(line.ProductID) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("product %d is already in the order", line.ProductID))
	}
	item, err := newItem(line)
	if err != nil {
		return err
	}
	o.items = append(o.items, item)
	return nil
}

func (o *Order) indexOf(productID int64) int {
	return slices.IndexFunc(o.items, func(item *Item) bool {
		return item.ProductID() == productID
	})
}

func (o *Order) recalculate() {
	total := decimal.Zero
	count := 0
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
		count += item.Quantity()
	}
	o.totalAmount = total
	o.itemsCount = count
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := validateNumber(number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setClientType(clientType ClientType) error {
	if err := clientType.Validate(); err != nil {
		return err
	}
	o.clientType = clientType
	return nil
}
