package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
)

// FringeRuleRepository handles database operations for fringe rules
type FringeRuleRepository struct {
	db *gorm.DB
}

// NewFringeRuleRepository creates a new FringeRuleRepository instance
func NewFringeRuleRepository(db *gorm.DB) *FringeRuleRepository {
	return &FringeRuleRepository{db: db}
}

// Create inserts a new fringe rule into the database
func (r *FringeRuleRepository) Create(ctx context.Context, rule *domain.FringeRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// GetByID retrieves a fringe rule by its ID
func (r *FringeRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FringeRule, error) {
	var rule domain.FringeRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// Update saves changes to an existing fringe rule
func (r *FringeRuleRepository) Update(ctx context.Context, rule *domain.FringeRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete removes a fringe rule from the database
func (r *FringeRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.FringeRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByProject returns all fringe rules for a project
func (r *FringeRuleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.FringeRule, error) {
	var rules []domain.FringeRule
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&rules).Error
	return rules, err
}

// ClearFromLines detaches a fringe rule from every budget line referencing it
func (r *FringeRuleRepository) ClearFromLines(ctx context.Context, ruleID uuid.UUID) ([]uuid.UUID, error) {
	var lineIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.BudgetLine{}).
		Where("fringe_rule_id = ?", ruleID).
		Pluck("id", &lineIDs).Error
	if err != nil {
		return nil, err
	}
	if len(lineIDs) == 0 {
		return nil, nil
	}
	err = r.db.WithContext(ctx).
		Model(&domain.BudgetLine{}).
		Where("fringe_rule_id = ?", ruleID).
		Update("fringe_rule_id", nil).Error
	if err != nil {
		return nil, err
	}
	return lineIDs, nil
}
