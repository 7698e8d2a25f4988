// Package product holds the catalog snapshot the ordering core reads when it
// prices a new line. The catalog itself is owned elsewhere.
package product

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/pkg/errs"
)

// Product is a read-only view of a catalog product. Quantity is the
// authoritative stock level at read time; it is never written through this type.
type Product struct {
	ID          int64
	Code        string
	Name        string
	PriceRetail decimal.Decimal
	Quantity    int
	IsActive    bool
}

func (p Product) Validate() error {
	var errList []error
	if p.ID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("product id", fmt.Errorf("%d is not greater than 0", p.ID)))
	}
	if p.PriceRetail.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("product price", fmt.Errorf("%s is negative", p.PriceRetail)))
	}
	return errors.Join(errList...)
}
