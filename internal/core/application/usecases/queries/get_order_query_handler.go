package queries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ordering/internal/pkg/errs"
)

// GetOrderQueryHandler loads a single order view with items and history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns a NOT_FOUND order error when no order matches.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var (
		row      orderRow
		lookupBy any
	)
	tx := db.Table("orders")
	if query.ID() != nil {
		lookupBy = query.ID().String()
		tx = tx.Where("id = ?", query.ID().Bytes())
	} else {
		lookupBy = query.Number()
		tx = tx.Where("number = ?", query.Number())
	}
	if err := tx.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("order", lookupBy)
		}
		return nil, err
	}

	view, err := row.view()
	if err != nil {
		return nil, err
	}

	var items []itemRow
	if err = db.Table("order_items").
		Where("order_id = ?", row.ID).
		Order("position").
		Find(&items).Error; err != nil {
		return nil, err
	}

	var history []historyRow
	if err = db.Table("order_status_history").
		Where("order_id = ?", row.ID).
		Order("position").
		Find(&history).Error; err != nil {
		return nil, err
	}

	view.Items = make([]OrderItemView, 0, len(items))
	for _, item := range items {
		itemView, err := item.view()
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, itemView)
	}

	view.History = make([]StatusHistoryView, 0, len(history))
	for _, entry := range history {
		entryView, err := entry.view()
		if err != nil {
			return nil, err
		}
		view.History = append(view.History, entryView)
	}

	return &view, nil
}
