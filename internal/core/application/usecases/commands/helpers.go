package commands

import (
	"cmp"
	"errors"
	"slices"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// notFound maps a repository ObjectNotFoundError onto the NOT_FOUND order error.
func notFound(err error, what string, id any) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewNotFoundError(what, id)
	}
	return err
}

// byProductID returns lines sorted by product id, so concurrent transactions
// lock product rows in the same order.
func byProductID(lines []order.Line) []order.Line {
	sorted := slices.Clone(lines)
	slices.SortFunc(sorted, func(a, b order.Line) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return sorted
}
