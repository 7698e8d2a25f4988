package postgres

import (
	"gorm.io/gorm"

	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/productrepo"
	"ordering/internal/adapters/out/postgres/rulerepo"
)

// Migrate creates or updates every table the module uses and the order
// number sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&productrepo.ProductDTO{},
		&rulerepo.RuleDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusHistoryDTO{},
		&outboxrepo.MessageDTO{},
	); err != nil {
		return err
	}
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS " + orderrepo.NumberSequence).Error
}
