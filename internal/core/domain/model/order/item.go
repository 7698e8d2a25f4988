package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Item is an order line. Code, name and price are copied from the catalog when
// the item is added and never follow later catalog changes.
type Item struct {
	id          kernel.UUID
	productID   int64
	productCode string
	productName string
	price       decimal.Decimal
	quantity    int
	isPromo     bool
}

func newItem(line Line) (*Item, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return &Item{
		id:          kernel.NewUUID(),
		productID:   line.ProductID,
		productCode: line.ProductCode,
		productName: line.ProductName,
		price:       line.Price,
		quantity:    line.Quantity,
		isPromo:     line.IsPromo,
	}, nil
}

// RestoreItem rebuilds a persisted item.
func RestoreItem(id kernel.UUID, line Line) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	item, err := newItem(line)
	if err != nil {
		return nil, err
	}
	item.id = id
	return item, nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) ProductID() int64 { return i.productID }
func (i *Item) ProductCode() string { return i.productCode }
func (i *Item) ProductName() string { return i.productName }
func (i *Item) Price() decimal.Decimal { return i.price }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) IsPromo() bool { return i.isPromo }
func (i *Item) Subtotal() decimal.Decimal { return i.Line().Subtotal() }

// Line returns the item as a Line, e.g. for stock restoration.
func (i *Item) Line() Line {
	return Line{
		ProductID:   i.productID,
		ProductCode: i.productCode,
		ProductName: i.productName,
		Price:       i.price,
		Quantity:    i.quantity,
		IsPromo:     i.isPromo,
	}
}

func (i *Item) resize(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
