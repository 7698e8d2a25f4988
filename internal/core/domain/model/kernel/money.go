package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits prices and totals are kept at.
const MoneyScale = 2

// RoundMoney rounds half away from zero to MoneyScale digits.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// FormatMoney renders d with exactly two decimals, e.g. 10 -> "10.00".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

// ParseMoney parses a non-negative decimal amount.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	if d.IsNegative() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", s))
	}
	return RoundMoney(d), nil
}
