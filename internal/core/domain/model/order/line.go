package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Line is a product and quantity resolved against the catalog, ready to become an order item.
type Line struct {
	ProductID   int64
	ProductCode string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	IsPromo     bool
}

// Subtotal is price × quantity rounded to money precision.
func (l Line) Subtotal() decimal.Decimal {
	return kernel.RoundMoney(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

func (l Line) Validate() error {
	var errList []error
	if l.ProductID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%d is not greater than 0", l.ProductID)))
	}
	if l.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", l.Quantity)))
	}
	if l.Price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", l.Price)))
	}
	return errors.Join(errList...)
}
