// Package wholesale models the order-acceptance rules applied to wholesale clients.
package wholesale

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/pkg/errs"
)

// RuleType selects how a rule's value is interpreted.
type RuleType string

const (
	// MinOrderAmount is a minimum cart total. Only global rules of this type apply.
	MinOrderAmount RuleType = "min_order_amount"
	// MinQuantity is a minimum line quantity.
	MinQuantity RuleType = "min_quantity"
	// Multiplicity requires a line quantity to be a multiple of the value.
	Multiplicity RuleType = "multiplicity"
)

func ParseRuleType(s string) (RuleType, error) {
	rt := RuleType(s)
	switch rt {
	case MinOrderAmount, MinQuantity, Multiplicity:
		return rt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("ruleType", fmt.Errorf("%q is not a valid rule type", s))
	}
}

// Rule is a single wholesale rule. A nil ProductID makes the rule global.
type Rule struct {
	ID        int64
	Type      RuleType
	ProductID *int64
	Value     decimal.Decimal
	IsActive  bool
}

func (r Rule) IsGlobal() bool {
	return r.ProductID == nil
}

// AppliesTo reports whether a line-level rule covers productID.
func (r Rule) AppliesTo(productID int64) bool {
	return r.IsGlobal() || *r.ProductID == productID
}
