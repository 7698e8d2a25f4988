// Package cartrepo reads and clears the carts of registered users. The
// storefront writes the rows; checkout consumes them in its transaction.
package cartrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// CartItemDTO is one product in a user's cart. Price is the unit price the
// storefront resolved for the user; NULL means the catalog price applies.
type CartItemDTO struct {
	UserID      uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ProductID   int64               `gorm:"primaryKey;autoIncrement:false"`
	ProductCode string              `gorm:"size:64"`
	ProductName string              `gorm:"size:255"`
	Price       decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Quantity    int                 `gorm:"not null"`
	IsPromo     bool                `gorm:"not null;default:false"`
	AddedAt     time.Time           `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Items returns the cart in the order products were added.
func (r *GormCartRepository) Items(ctx context.Context, userID kernel.UUID) ([]ports.CartItem, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartItemDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("added_at, product_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]ports.CartItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, ports.CartItem{
			ProductID:   dto.ProductID,
			ProductCode: dto.ProductCode,
			ProductName: dto.ProductName,
			Price:       dto.Price,
			Quantity:    dto.Quantity,
			IsPromo:     dto.IsPromo,
		})
	}
	return items, nil
}

// Clear empties the cart.
func (r *GormCartRepository) Clear(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Delete(&CartItemDTO{}).Error
}

// Put sets the quantity and resolved price of a product in the cart.
func (r *GormCartRepository) Put(ctx context.Context, userID kernel.UUID, item ports.CartItem) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	dto := CartItemDTO{
		UserID:      userID.Bytes(),
		ProductID:   item.ProductID,
		ProductCode: item.ProductCode,
		ProductName: item.ProductName,
		Price:       item.Price,
		Quantity:    item.Quantity,
		IsPromo:     item.IsPromo,
		AddedAt:     time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"product_code", "product_name", "price", "quantity", "is_promo"}),
		}).
		Create(&dto).Error
}
