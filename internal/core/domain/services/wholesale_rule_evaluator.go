package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/wholesale"
)

// Verdict is the outcome of a wholesale rule evaluation. Message is empty when
// Passed is true and is meant to be shown to the client verbatim otherwise.
type Verdict struct {
	Passed  bool
	Message string
}

func pass() Verdict {
	return Verdict{Passed: true}
}

func fail(format string, args ...any) Verdict {
	return Verdict{Message: fmt.Sprintf(format, args...)}
}

// WholesaleRuleEvaluator validates wholesale carts.
//
// Business rules:
//   - retail clients are never checked
//   - inactive rules are ignored
//   - global min_order_amount rules are compared with the cart total
//   - min_quantity and multiplicity rules apply to the lines they target;
//     a rule without a product targets every line
//   - the first violation wins
type WholesaleRuleEvaluator struct{}

func NewWholesaleRuleEvaluator() WholesaleRuleEvaluator {
	return WholesaleRuleEvaluator{}
}

// Evaluate checks lines against rules for the given client type.
func (WholesaleRuleEvaluator) Evaluate(clientType order.ClientType, lines []order.Line, rules []wholesale.Rule) Verdict {
	if clientType != order.Wholesale {
		return pass()
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	for _, rule := range rules {
		if !rule.IsActive || rule.Type != wholesale.MinOrderAmount || !rule.IsGlobal() {
			continue
		}
		if total.LessThan(rule.Value) {
			return fail("minimum wholesale order amount is %s, your cart total is %s",
				kernel.FormatMoney(rule.Value), kernel.FormatMoney(total))
		}
	}

	for _, line := range lines {
		for _, rule := range rules {
			if !rule.IsActive || !rule.AppliesTo(line.ProductID) {
				continue
			}
			if v := checkLine(rule, line); !v.Passed {
				return v
			}
		}
	}

	return pass()
}

func checkLine(rule wholesale.Rule, line order.Line) Verdict {
	quantity := decimal.NewFromInt(int64(line.Quantity))

	switch rule.Type {
	case wholesale.MinQuantity:
		if quantity.LessThan(rule.Value) {
			return fail("minimum wholesale quantity for %s is %s, requested %d",
				lineName(line), rule.Value.String(), line.Quantity)
		}
	case wholesale.Multiplicity:
		if !rule.Value.IsPositive() {
			return pass()
		}
		if !quantity.Mod(rule.Value).IsZero() {
			return fail("wholesale quantity for %s must be a multiple of %s, requested %d",
				lineName(line), rule.Value.String(), line.Quantity)
		}
	}
	return pass()
}

func lineName(line order.Line) string {
	if line.ProductName == "" {
		return fmt.Sprintf("product %d", line.ProductID)
	}
	return fmt.Sprintf("product %d (%s)", line.ProductID, line.ProductName)
}
