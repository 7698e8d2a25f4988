package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler pages through order summaries, newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for paginated order lists.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrderPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filtered := func() *gorm.DB {
		tx := h.db.WithContext(ctx).Table("orders")
		if query.UserID() != nil {
			tx = tx.Where("user_id = ?", query.UserID().Bytes())
		}
		if len(query.Statuses()) > 0 {
			names := make([]string, 0, len(query.Statuses()))
			for _, s := range query.Statuses() {
				names = append(names, s.String())
			}
			tx = tx.Where("status = ANY(?)", pq.Array(names))
		}
		if query.From() != nil {
			tx = tx.Where("created_at >= ?", *query.From())
		}
		if query.To() != nil {
			tx = tx.Where("created_at < ?", *query.To())
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []orderRow
	if err := filtered().
		Order("created_at DESC, number DESC").
		Limit(query.PageSize()).
		Offset(query.Offset()).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	page := &OrderPage{
		Orders:     make([]OrderSummaryView, 0, len(rows)),
		Page:       query.Page(),
		PageSize:   query.PageSize(),
		Total:      total,
		TotalPages: int((total + int64(query.PageSize()) - 1) / int64(query.PageSize())),
	}
	for _, row := range rows {
		summary, err := row.summary()
		if err != nil {
			return nil, err
		}
		page.Orders = append(page.Orders, summary)
	}

	return page, nil
}
