package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checkoutTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func validCheckout() order.Checkout {
	return order.Checkout{
		Contact:       order.Contact{Name: "Olena", Phone: "+380501112233", Email: "olena@example.com"},
		Delivery:      order.Delivery{Method: "courier", City: "Kyiv", Address: "Khreshchatyk 1"},
		PaymentMethod: "card",
		Comment:       "call before delivery",
	}
}

func line(productID int64, price string, quantity int) order.Line {
	return order.Line{
		ProductID:   productID,
		ProductCode: "SKU-" + price,
		ProductName: "Product",
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
	}
}

func newTestOrder(t *testing.T, lines ...order.Line) *order.Order {
	t.Helper()
	userID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), "20240315-000001", &userID, order.Retail, validCheckout(), lines, checkoutTime)
	require.NoError(t, err)
	return o
}

func moveTo(t *testing.T, o *order.Order, path ...order.Status) {
	t.Helper()
	for _, status := range path {
		require.NoError(t, o.ChangeStatus(order.StatusChange{Target: status, Source: order.SourceManager}, checkoutTime))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with derived totals and creation history", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100.00", 2), line(8, "50.00", 3))

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusNewOrder, o.Status())
		assert.Equal(t, "20240315-000001", o.Number())
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("350.00")))
		assert.Equal(t, 5, o.ItemsCount())
		assert.Equal(t, order.PaymentPending, o.Payment().Status)
		assert.Equal(t, "card", o.Payment().Method)
		require.Len(t, o.Items(), 2)
		assert.Equal(t, int64(7), o.Items()[0].ProductID())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.Unknown, history[0].OldStatus())
		assert.Equal(t, order.StatusNewOrder, history[0].NewStatus())
		assert.Equal(t, order.CreatedComment, history[0].Comment())

		events := o.DomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(order.CreatedEvent)
		require.True(t, ok)
		assert.Equal(t, order.EventCreated, created.EventType())
		assert.True(t, created.AggregateID().IsEqual(o.ID()))
		assert.Equal(t, 5, created.ItemsCount)
	})

	t.Run("should allow guest orders", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "20240315-000002", nil, order.Wholesale, validCheckout(), []order.Line{line(1, "10", 1)}, checkoutTime)

		require.NoError(t, err)
		assert.Nil(t, o.UserID())
		assert.Equal(t, order.Wholesale, o.ClientType())
	})

	t.Run("should fail with empty cart", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "20240315-000001", nil, order.Retail, validCheckout(), nil, checkoutTime)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.HasCode(err, errs.CodeEmptyCart))
	})

	t.Run("should collect all validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		checkout := validCheckout()
		checkout.Contact.Phone = ""

		o, err := order.NewOrder(invalidID, "bad", nil, order.ClientType("vip"), checkout, []order.Line{line(1, "10", 1)}, checkoutTime)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "order number")
		assert.Contains(t, err.Error(), "clientType")
		assert.Contains(t, err.Error(), "contact phone")
	})

	t.Run("should reject duplicate products and invalid lines", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "20240315-000001", nil, order.Retail, validCheckout(),
			[]order.Line{line(1, "10", 1), line(1, "10", 2)}, checkoutTime)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "product 1 is already in the order")

		_, err = order.NewOrder(kernel.NewUUID(), "20240315-000001", nil, order.Retail, validCheckout(),
			[]order.Line{line(1, "10", 0)}, checkoutTime)
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should follow the happy path and append history", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))

		moveTo(t, o, order.Processing, order.Confirmed, order.Paid)
		require.NoError(t, o.ChangeStatus(order.StatusChange{
			Target:         order.Shipped,
			Source:         order.SourceManager,
			TrackingNumber: "TTN-123",
		}, checkoutTime))
		moveTo(t, o, order.Completed)

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, order.PaymentPaid, o.Payment().Status)
		assert.Equal(t, "TTN-123", o.Delivery().TrackingNumber)
		assert.Len(t, o.History(), 6)
		assert.Len(t, o.DomainEvents(), 6)
	})

	t.Run("should reject transitions absent from the table for every source", func(t *testing.T) {
		for _, source := range []order.ChangeSource{order.SourceSystem, order.SourceManager, order.SourceClientAction} {
			o := newTestOrder(t, line(7, "100", 1))

			err := o.ChangeStatus(order.StatusChange{Target: order.Completed, Source: source}, checkoutTime)

			require.Error(t, err)
			assert.True(t, errs.HasCode(err, errs.CodeInvalidTransition), source)
			assert.Equal(t, order.StatusNewOrder, o.Status())
			assert.Len(t, o.History(), 1)
		}
	})

	t.Run("should not leave terminal statuses", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))
		moveTo(t, o, order.Cancelled)

		err := o.ChangeStatus(order.StatusChange{Target: order.Cancelled, Source: order.SourceManager}, checkoutTime)

		assert.True(t, errs.HasCode(err, errs.CodeInvalidTransition))
	})

	t.Run("should let a client cancel a new order", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))
		actor := *o.UserID()

		err := o.ChangeStatus(order.StatusChange{
			Target:  order.Cancelled,
			Source:  order.SourceClientAction,
			ActorID: &actor,
			Comment: "changed my mind",
		}, checkoutTime)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "changed my mind", o.CancelledReason())
		assert.Equal(t, order.SourceClientAction, o.CancelledBy())
		last := o.History()[len(o.History())-1]
		assert.Equal(t, order.StatusNewOrder, last.OldStatus())
		assert.Equal(t, order.Cancelled, last.NewStatus())
		assert.True(t, last.ChangedBy().IsEqual(actor))
	})

	t.Run("should forbid a client to cancel a confirmed order", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))
		moveTo(t, o, order.Processing, order.Confirmed)

		err := o.ChangeStatus(order.StatusChange{Target: order.Cancelled, Source: order.SourceClientAction}, checkoutTime)

		require.Error(t, err)
		assert.True(t, errs.HasCode(err, errs.CodeForbidden))
		assert.Contains(t, err.Error(), "new_order, processing")
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("should forbid a client any target but cancelled", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))

		err := o.ChangeStatus(order.StatusChange{Target: order.Processing, Source: order.SourceClientAction}, checkoutTime)

		assert.True(t, errs.HasCode(err, errs.CodeForbidden))
	})

	t.Run("should check the table before the client restriction", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))
		moveTo(t, o, order.Cancelled)
		shipped := newTestOrder(t, line(7, "100", 1))
		moveTo(t, shipped, order.Processing, order.Confirmed, order.Shipped)

		again := o.ChangeStatus(order.StatusChange{Target: order.Cancelled, Source: order.SourceClientAction}, checkoutTime)
		late := shipped.ChangeStatus(order.StatusChange{Target: order.Cancelled, Source: order.SourceClientAction}, checkoutTime)

		assert.True(t, errs.HasCode(again, errs.CodeInvalidTransition))
		assert.True(t, errs.HasCode(late, errs.CodeInvalidTransition))
		assert.Contains(t, late.Error(), "shipped")
		assert.Equal(t, order.Shipped, shipped.Status())
	})

	t.Run("should reject an invalid source", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))

		err := o.ChangeStatus(order.StatusChange{Target: order.Processing, Source: "robot"}, checkoutTime)

		assert.True(t, errs.IsValidation(err))
	})
}

func TestOrder_EditItems(t *testing.T) {
	t.Run("should resize, remove and add while keeping totals consistent", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100.00", 2), line(8, "50.00", 1))

		delta, err := o.ChangeItemQuantity(7, 5)
		require.NoError(t, err)
		assert.Equal(t, 3, delta)

		removed, ok, err := o.RemoveItem(8)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, removed.Quantity)

		require.NoError(t, o.AddItem(line(9, "12.50", 2)))

		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("525.00")))
		assert.Equal(t, 7, o.ItemsCount())

		o.RecordItemsEdit(nil, order.SourceManager, checkoutTime)
		last := o.History()[len(o.History())-1]
		assert.Equal(t, last.OldStatus(), last.NewStatus())
		assert.Equal(t, order.ItemsEditedComment, last.Comment())
	})

	t.Run("should keep price snapshot on resize", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100.00", 2))

		_, err := o.ChangeItemQuantity(7, 1)
		require.NoError(t, err)

		item, ok := o.Item(7)
		require.True(t, ok)
		assert.True(t, item.Price().Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, "SKU-100.00", item.ProductCode())
	})

	t.Run("should treat removing an absent product as a no-op", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))

		_, ok, err := o.RemoveItem(42)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should reject resizing an absent product", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))

		_, err := o.ChangeItemQuantity(42, 1)

		assert.True(t, errs.HasCode(err, errs.CodeNotFound))
	})

	t.Run("should reject edits outside editable statuses", func(t *testing.T) {
		o := newTestOrder(t, line(7, "100", 1))
		moveTo(t, o, order.Processing, order.Confirmed, order.Paid)

		_, err := o.ChangeItemQuantity(7, 2)
		require.Error(t, err)
		assert.True(t, errs.HasCode(err, errs.CodeInvalidState))
		assert.Contains(t, err.Error(), "new_order, processing, confirmed")

		_, _, err = o.RemoveItem(7)
		assert.True(t, errs.HasCode(err, errs.CodeInvalidState))
		assert.True(t, errs.HasCode(o.AddItem(line(9, "1", 1)), errs.CodeInvalidState))
	})
}

func TestOrder_PullDomainEvents(t *testing.T) {
	o := newTestOrder(t, line(7, "100", 1))

	events := o.PullDomainEvents()

	assert.Len(t, events, 1)
	assert.Empty(t, o.DomainEvents())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore state and derive totals", func(t *testing.T) {
		item, err := order.RestoreItem(kernel.NewUUID(), line(7, "19.99", 3))
		require.NoError(t, err)
		entry, err := order.RestoreHistoryEntry(kernel.NewUUID(), order.Unknown, order.StatusNewOrder, nil, order.SourceSystem, order.CreatedComment, checkoutTime)
		require.NoError(t, err)

		o, err := order.RestoreOrder(order.Snapshot{
			ID:         kernel.NewUUID(),
			Number:     "20240315-000010",
			ClientType: order.Retail,
			Status:     order.Processing,
			Items:      []*order.Item{item},
			History:    []order.HistoryEntry{entry},
			CreatedAt:  checkoutTime,
			UpdatedAt:  checkoutTime,
		})

		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("59.97")))
		assert.Equal(t, 3, o.ItemsCount())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.Snapshot{
			ID:         kernel.NewUUID(),
			Number:     "20240315-000010",
			ClientType: order.Retail,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestFormatNumber(t *testing.T) {
	number, err := order.FormatNumber(time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC), 42)

	require.NoError(t, err)
	assert.Equal(t, "20240102-000042", number)

	_, err = order.FormatNumber(time.Now(), 0)
	assert.Error(t, err)
}
