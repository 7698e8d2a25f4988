package outboxrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores messages for later publication.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if err := m.ID.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromPort(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks up to limit unsent messages, oldest first. Rows locked by
// another relay are skipped so relays can run side by side.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toPort(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// MarkSent stamps messages as published.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", raw).
		Update("sent_at", at).Error
}
