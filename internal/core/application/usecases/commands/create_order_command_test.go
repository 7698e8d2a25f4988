package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCheckout() order.Checkout {
	return order.Checkout{
		Contact:       order.Contact{Name: "Taras", Phone: "+380671234567"},
		Delivery:      order.Delivery{Method: "nova_poshta", City: "Lviv", Branch: "12"},
		PaymentMethod: "cash_on_delivery",
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should create guest command with items", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(nil, order.Retail, testCheckout(),
			[]ports.CartItem{{ProductID: 1, Quantity: 2}})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Nil(t, cmd.UserID())
		assert.Len(t, cmd.Items(), 1)
	})

	t.Run("should accept an empty item set", func(t *testing.T) {
		userID := kernel.NewUUID()
		cmd, err := commands.NewCreateOrderCommand(&userID, order.Wholesale, testCheckout(), nil)

		require.NoError(t, err)
		assert.True(t, cmd.UserID().IsEqual(userID))
		assert.Empty(t, cmd.Items())
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		checkout := testCheckout()
		checkout.Contact.Name = ""

		_, err := commands.NewCreateOrderCommand(nil, order.ClientType("vip"), checkout,
			[]ports.CartItem{{ProductID: 1, Quantity: 0}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "clientType")
		assert.Contains(t, err.Error(), "contact name")
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should reject a negative resolved price", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(nil, order.Retail, testCheckout(),
			[]ports.CartItem{{ProductID: 1, Quantity: 1, Price: decimal.NewNullDecimal(decimal.RequireFromString("-5"))}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("should reject duplicated products", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(nil, order.Retail, testCheckout(),
			[]ports.CartItem{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 2}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listed twice")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
