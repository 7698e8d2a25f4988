// Package rulerepo stores wholesale rules.
package rulerepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ordering/internal/core/domain/model/wholesale"
)

// RuleDTO is the wholesale_rules table. A null product_id makes the rule global.
type RuleDTO struct {
	ID        int64           `gorm:"primaryKey"`
	RuleType  string          `gorm:"type:varchar(32);not null"`
	ProductID *int64          `gorm:"index"`
	Value     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsActive  bool            `gorm:"not null;index"`
}

func (RuleDTO) TableName() string {
	return "wholesale_rules"
}

// GormRuleRepository implements WholesaleRuleRepository using GORM.
type GormRuleRepository struct {
	db *gorm.DB
}

func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// ListActive returns active rules ordered by id. Rows with an unknown rule
// type are skipped.
func (r *GormRuleRepository) ListActive(ctx context.Context) ([]wholesale.Rule, error) {
	var dtos []RuleDTO
	if err := r.db.WithContext(ctx).Where("is_active").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]wholesale.Rule, 0, len(dtos))
	for _, dto := range dtos {
		ruleType, err := wholesale.ParseRuleType(dto.RuleType)
		if err != nil {
			continue
		}
		rules = append(rules, wholesale.Rule{
			ID:        dto.ID,
			Type:      ruleType,
			ProductID: dto.ProductID,
			Value:     dto.Value,
			IsActive:  dto.IsActive,
		})
	}
	return rules, nil
}

// Add stores a rule and returns it with its assigned id.
func (r *GormRuleRepository) Add(ctx context.Context, rule wholesale.Rule) (wholesale.Rule, error) {
	if _, err := wholesale.ParseRuleType(string(rule.Type)); err != nil {
		return wholesale.Rule{}, err
	}
	dto := RuleDTO{
		RuleType:  string(rule.Type),
		ProductID: rule.ProductID,
		Value:     rule.Value,
		IsActive:  rule.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return wholesale.Rule{}, err
	}
	rule.ID = dto.ID
	return rule, nil
}
