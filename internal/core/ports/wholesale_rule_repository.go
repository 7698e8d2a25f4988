package ports

import (
	"context"

	"ordering/internal/core/domain/model/wholesale"
)

type WholesaleRuleRepository interface {
	// ListActive returns active rules ordered by id.
	ListActive(ctx context.Context) ([]wholesale.Rule, error)
}
