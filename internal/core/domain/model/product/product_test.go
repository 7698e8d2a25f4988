package product_test

import (
	"testing"

	"ordering/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Validate(t *testing.T) {
	valid := product.Product{ID: 1, Code: "MUG", Name: "Blue mug", PriceRetail: decimal.NewFromInt(10), Quantity: 3}
	require.NoError(t, valid.Validate())

	invalid := product.Product{ID: 0, PriceRetail: decimal.NewFromInt(-1)}
	err := invalid.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "product id")
	assert.Contains(t, err.Error(), "product price")
}
