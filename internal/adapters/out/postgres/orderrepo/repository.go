package orderrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// NumberSequence is the Postgres sequence feeding order numbers.
const NumberSequence = "order_number_seq"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items and history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order row, replaces the item set with the aggregate's
// current items and appends history entries not yet stored.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "number", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}
	removed := db.Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		removed = removed.Where("id NOT IN ?", keep)
	}
	if err := removed.Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "quantity", "subtotal"}),
		}).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	if len(dto.History) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.History).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(ctx, "id = ?", id.Bytes(), id.String())
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE and then loads
// the aggregate. It must run inside a transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var locked OrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Take(&locked, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.load(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.load(ctx, "number = ?", number, number)
}

// NextNumberSequence draws the next value of the order number sequence.
func (r *GormOrderRepository) NextNumberSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", NumberSequence).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *GormOrderRepository) load(ctx context.Context, where string, arg any, lookup string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Take(&dto, where, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", lookup)
		}
		return nil, err
	}

	return toDomain(dto)
}
