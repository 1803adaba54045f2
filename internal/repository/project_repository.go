package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a repository bound to an open transaction
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by its ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByIDWithLines retrieves a project with its budget lines and fringe rules
func (r *ProjectRepository) GetByIDWithLines(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC, created_at ASC")
		}).
		Preload("Lines.Payee").
		Preload("FringeRules").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByCodeAndOwner retrieves a project by its code scoped to one owner. The
// owner predicate is part of the query itself so a code under another owner
// behaves exactly like a code that does not exist.
func (r *ProjectRepository) GetByCodeAndOwner(ctx context.Context, projectCode string, ownerID uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Where("project_code = ? AND owner_id = ?", projectCode, ownerID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Update saves changes to an existing project
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project from the database
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner returns all projects belonging to an owner
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListIDsByStatus returns the IDs of all projects in a given status
func (r *ProjectRepository) ListIDsByStatus(ctx context.Context, status domain.ProjectStatus) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("status = ?", status).
		Pluck("id", &ids).Error
	return ids, err
}

// UpdateTotals writes both derived totals in a single statement
func (r *ProjectRepository) UpdateTotals(ctx context.Context, id uuid.UUID, totalBudget, totalSpent float64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_budget": totalBudget,
			"total_spent":  totalSpent,
		}).Error
}
