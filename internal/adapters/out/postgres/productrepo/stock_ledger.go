package productrepo

import (
	"context"

	"gorm.io/gorm"
)

// GormStockLedger moves product stock with single UPDATE statements so
// concurrent checkouts never oversell.
type GormStockLedger struct {
	db *gorm.DB
}

func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Decrement takes quantity from stock if enough is left. ok is false when the
// row was not updated: the stock was too low or the product does not exist.
func (l *GormStockLedger) Decrement(ctx context.Context, productID int64, quantity int) (bool, error) {
	result := l.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Increment returns quantity to stock. A product removed from the catalog is
// skipped silently.
func (l *GormStockLedger) Increment(ctx context.Context, productID int64, quantity int) error {
	return l.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}
