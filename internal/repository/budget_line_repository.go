package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
)

// BudgetLineRepository handles database operations for budget lines
type BudgetLineRepository struct {
	db *gorm.DB
}

// NewBudgetLineRepository creates a new BudgetLineRepository instance
func NewBudgetLineRepository(db *gorm.DB) *BudgetLineRepository {
	return &BudgetLineRepository{db: db}
}

// WithTx returns a repository bound to an open transaction
func (r *BudgetLineRepository) WithTx(tx *gorm.DB) *BudgetLineRepository {
	return &BudgetLineRepository{db: tx}
}

// Create inserts a new budget line into the database
func (r *BudgetLineRepository) Create(ctx context.Context, line *domain.BudgetLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// GetByID retrieves a budget line by its ID
func (r *BudgetLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetLine, error) {
	var line domain.BudgetLine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Update saves changes to an existing budget line
func (r *BudgetLineRepository) Update(ctx context.Context, line *domain.BudgetLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// Delete removes a budget line from the database
func (r *BudgetLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.BudgetLine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByProject returns all budget lines for a project in line order
func (r *BudgetLineRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.BudgetLine, error) {
	var lines []domain.BudgetLine
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("line_number ASC, created_at ASC").
		Find(&lines).Error
	return lines, err
}

// GetMaxLineNumber returns the highest line_number within a project
func (r *BudgetLineRepository) GetMaxLineNumber(ctx context.Context, projectID uuid.UUID) (int, error) {
	var maxNumber *int
	err := r.db.WithContext(ctx).
		Model(&domain.BudgetLine{}).
		Where("project_id = ?", projectID).
		Select("MAX(line_number)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	if maxNumber == nil {
		return 0, nil
	}
	return *maxNumber, nil
}

// GetEarliestByProjectAndPayee returns the oldest budget line in a project
// assigned to a payee, or gorm.ErrRecordNotFound when the payee is assigned to
// none. Creation time is the deterministic tie-break for multiple matches.
func (r *BudgetLineRepository) GetEarliestByProjectAndPayee(ctx context.Context, projectID, payeeID uuid.UUID) (*domain.BudgetLine, error) {
	var line domain.BudgetLine
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND payee_id = ?", projectID, payeeID).
		Order("created_at ASC").
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// SumEstimates returns the sum of estimates over a project's budget lines
func (r *BudgetLineRepository) SumEstimates(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.BudgetLine{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(estimate), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum line estimates: %w", err)
	}
	return total, nil
}

// UpdateActualSpent writes a line's derived actual_spent
func (r *BudgetLineRepository) UpdateActualSpent(ctx context.Context, id uuid.UUID, actualSpent float64) error {
	return r.db.WithContext(ctx).
		Model(&domain.BudgetLine{}).
		Where("id = ?", id).
		Update("actual_spent", actualSpent).Error
}

// UpdateLineNumbers renumbers a project's budget lines in a transaction
func (r *BudgetLineRepository) UpdateLineNumbers(ctx context.Context, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			result := tx.Model(&domain.BudgetLine{}).
				Where("id = ?", id).
				Update("line_number", i+1)
			if result.Error != nil {
				return fmt.Errorf("failed to update line number for line %s: %w", id, result.Error)
			}
		}
		return nil
	})
}
