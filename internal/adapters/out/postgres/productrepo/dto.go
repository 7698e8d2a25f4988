// Package productrepo reads catalog products and keeps their stock level.
package productrepo

import (
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/product"
)

// ProductDTO is the products table. The catalog service owns the rows; this
// module only reads them and moves quantity.
type ProductDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false"`
	Code        string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name        string          `gorm:"type:varchar(255);not null"`
	PriceRetail decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null;check:products_quantity_non_negative,quantity >= 0"`
	IsActive    bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p product.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		PriceRetail: p.PriceRetail,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
	}
}

func toDomain(dto ProductDTO) product.Product {
	return product.Product{
		ID:          dto.ID,
		Code:        dto.Code,
		Name:        dto.Name,
		PriceRetail: dto.PriceRetail,
		Quantity:    dto.Quantity,
		IsActive:    dto.IsActive,
	}
}
