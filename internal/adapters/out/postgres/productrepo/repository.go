package productrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Get returns an active product. Inactive products are reported as not found.
func (r *GormProductRepository) Get(ctx context.Context, id int64) (product.Product, error) {
	var dto ProductDTO
	err := r.db.WithContext(ctx).Take(&dto, "id = ? AND is_active", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product.Product{}, errs.NewObjectNotFoundError("product", id)
		}
		return product.Product{}, err
	}
	return toDomain(dto), nil
}

// Save inserts or replaces catalog products. It is used to seed the catalog.
func (r *GormProductRepository) Save(ctx context.Context, products ...product.Product) error {
	if len(products) == 0 {
		return nil
	}
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(p))
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dtos).Error
}
